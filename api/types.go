package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	contactHandler    contactHandler
	userHandler       userHandler
	projectHandler    projectHandler
	categoryHandler   categoryHandler
	technologyHandler technologyHandler
	commentHandler    commentHandler
}
