package router

import (
	"github.com/goidm/identity-backend/internal/application"
	"github.com/goidm/identity-backend/internal/container"
	"github.com/goidm/identity-backend/internal/domain/repository"
	pginfra "github.com/goidm/identity-backend/internal/infrastructure/postgres"
	"github.com/goidm/identity-backend/internal/infrastructure/rabbitmq"
	handlers "github.com/goidm/identity-backend/internal/interface/http"
	"github.com/goidm/identity-backend/internal/router/modules"
	"github.com/goidm/identity-backend/pkg/translation"
)

type UserModuleDeps struct {
	Repo         repository.UsersRepository
	Registration *application.RegistrationService
	Activation   *application.ActivationService
	Handler      *handlers.UserHandler
}

func buildUserDeps() UserModuleDeps {
	repo := pginfra.NewUsersRepository(container.GetPGPool())

	notifier := rabbitmq.NewNotifier(
		container.GetRabbitPub(),
		container.GetConfig().ActivateURL,
		container.GetLogger(),
	)

	registration := application.NewRegistrationService(repo, notifier, container.GetLogger())
	activation := application.NewActivationService(repo, container.GetLogger())

	handler := handlers.NewUserHandler(
		registration,
		activation,
		container.GetLogger(),
		translation.DefaultCatalog(),
	)

	return UserModuleDeps{
		Repo:         repo,
		Registration: registration,
		Activation:   activation,
		Handler:      handler,
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	userDeps := buildUserDeps()
	r.Add(modules.New(userDeps.Handler))
	r.Add(modules.NewDebugModule())
}
