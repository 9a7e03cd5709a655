package service

import (
	"github.com/podcastsite/backend/internal/config"
	"github.com/podcastsite/backend/internal/repository"
)

type Services struct {
	Session  *SessionService
	Carousel *CarouselService
	Video    *VideoService
}

func NewServices(repos *repository.Repositories, catalog VideoCatalog, notifier SlotNotifier, cfg *config.Config) *Services {
	return &Services{
		Session:  NewSessionService(cfg),
		Carousel: NewCarouselService(repos.Slot, repos.Revision, catalog, notifier, cfg),
		Video:    NewVideoService(catalog),
	}
}
