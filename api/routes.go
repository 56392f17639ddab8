package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/rpupo63/student-showcase-backend/validation"
)

// setupRoutes wires the public, authenticated and admin-only route groups.
func setupRoutes(r chi.Router, handlers *routeHandlers, auth authMiddleware, validate validateMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.With(validate.schema(validation.SchemaContact)).Post("/contact", handlers.contactHandler.createContact())
		r.With(validate.schema(validation.SchemaRegister)).Post("/user", handlers.userHandler.register())
		r.With(validate.schema(validation.SchemaLogin)).Post("/login", handlers.userHandler.login())

		r.Get("/project", handlers.projectHandler.getAllProjects())
		r.Get("/category", handlers.categoryHandler.getAllCategories())
		r.Get("/technology", handlers.technologyHandler.getAllTechnologies())
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(auth.authenticate)

		r.Get("/user", handlers.userHandler.getAllUsers())
		r.With(validate.schema(validation.SchemaUserUpdate)).Put("/user", handlers.userHandler.updateUser())
		r.Delete("/user", handlers.userHandler.deleteUser())

		r.With(validate.schema(validation.SchemaProjectLike)).Put("/project/like", handlers.projectHandler.likeProject())

		r.Get("/comment", handlers.commentHandler.getAllComments())
		r.With(validate.schema(validation.SchemaComment)).Post("/comment", handlers.commentHandler.createComment())
	})

	// Admin-only routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(auth.authenticate)
		r.Use(auth.requireAdmin)

		r.Get("/contact", handlers.contactHandler.getAllContacts())
		r.Put("/contact", handlers.contactHandler.updateContactStatus())

		r.With(validate.schema(validation.SchemaUserPromote)).Put("/user/promote", handlers.userHandler.promoteUser())

		r.With(validate.schema(validation.SchemaProject)).Post("/project", handlers.projectHandler.createProject())
		r.With(validate.schema(validation.SchemaProjectUpdate)).Put("/project", handlers.projectHandler.updateProject())
		r.Delete("/project", handlers.projectHandler.deleteProject())
		r.With(validate.schema(validation.SchemaProjectPublish)).Put("/project/publishing_status", handlers.projectHandler.updatePublishingStatus())

		r.With(validate.schema(validation.SchemaCategory)).Post("/category", handlers.categoryHandler.createCategory())
		r.With(validate.schema(validation.SchemaCategoryUpdate)).Put("/category", handlers.categoryHandler.updateCategory())
		r.Delete("/category", handlers.categoryHandler.deleteCategory())

		r.With(validate.schema(validation.SchemaTechnology)).Post("/technology", handlers.technologyHandler.createTechnology())
		r.With(validate.schema(validation.SchemaTechnologyUpdate)).Put("/technology", handlers.technologyHandler.updateTechnology())
		r.Delete("/technology", handlers.technologyHandler.deleteTechnology())

		r.With(validate.schema(validation.SchemaCommentUpdate)).Put("/comment", handlers.commentHandler.updateComment())
		r.Delete("/comment", handlers.commentHandler.deleteComment())
	})
}
