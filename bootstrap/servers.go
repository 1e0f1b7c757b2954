package bootstrap

import (
	"photo-indexer/config"
	"photo-indexer/port"
	"photo-indexer/rest"
	"photo-indexer/usecase"
)

func newSearchHandler(search *usecase.SearchPhotosUsecase) *rest.SearchHandler {
	return rest.NewSearchHandler(search, int64(config.SearchPageSize))
}

func newProfileHandler(register *usecase.RegisterProfileUsecase, list *usecase.ListProfilesUsecase) *rest.ProfileHandler {
	return rest.NewProfileHandler(register, list)
}

func newImportHandler(queue port.JobQueue) *rest.ImportHandler {
	return rest.NewImportHandler(queue)
}

func newHealthHandler() *rest.HealthHandler {
	return rest.NewHealthHandler()
}
