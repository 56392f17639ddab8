package api

import (
	"github.com/rpupo63/student-showcase-backend/database"
	"github.com/rpupo63/student-showcase-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(store database.Store, auth *services.AuthService, cfg map[string]string) *routeHandlers {
	return &routeHandlers{
		contactHandler:    newContactHandler(store, cfg),
		userHandler:       newUserHandler(store, auth),
		projectHandler:    newProjectHandler(store),
		categoryHandler:   newCategoryHandler(store),
		technologyHandler: newTechnologyHandler(store),
		commentHandler:    newCommentHandler(store),
	}
}
