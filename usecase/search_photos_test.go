package usecase

import (
	"context"
	"errors"
	"testing"

	"photo-indexer/domain"
)

func TestSearchPhotosUsecase_Execute(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		offset    int64
		limit     int64
		searchErr error
		wantErr   bool
	}{
		{
			name:   "valid query",
			query:  "parade",
			offset: 0,
			limit:  20,
		},
		{
			name:    "empty query",
			query:   "",
			limit:   20,
			wantErr: true,
		},
		{
			name:    "negative offset",
			query:   "parade",
			offset:  -1,
			limit:   20,
			wantErr: true,
		},
		{
			name:    "zero limit",
			query:   "parade",
			limit:   0,
			wantErr: true,
		},
		{
			name:    "limit too large",
			query:   "parade",
			limit:   1001,
			wantErr: true,
		},
		{
			name:      "engine error surfaces",
			query:     "parade",
			limit:     20,
			searchErr: errors.New("engine down"),
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index := &mockPhotoIndex{
				searchSet: &domain.SearchResultSet{Total: 1},
				searchErr: tt.searchErr,
			}
			u := NewSearchPhotosUsecase(index)

			set, err := u.Execute(context.Background(), tt.query, tt.offset, tt.limit)
			if tt.wantErr {
				if err == nil {
					t.Error("Execute() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if set.Total != 1 {
				t.Errorf("Total = %d, want 1", set.Total)
			}
		})
	}
}

func TestSearchPhotosUsecase_SanitizedToEmpty(t *testing.T) {
	index := &mockPhotoIndex{searchErr: errors.New("should not be called")}
	u := NewSearchPhotosUsecase(index)

	set, err := u.Execute(context.Background(), "\u200B\u200B", 0, 20)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if set.Total != 0 || len(set.Results) != 0 {
		t.Errorf("set = %+v, want empty result set", set)
	}
}
