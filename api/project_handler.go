package api

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/student-showcase-backend/database"
	"github.com/rpupo63/student-showcase-backend/errs"
	"github.com/rpupo63/student-showcase-backend/models"
	"github.com/rpupo63/student-showcase-backend/sanitize"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     database.Store
}

func newProjectHandler(store database.Store) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

type projectRequest struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	CreatedBy    string   `json:"created_by"`
	Description  string   `json:"description"`
	ProjectLink  string   `json:"project_link"`
	Category     string   `json:"category"`
	Technologies []string `json:"technologies"`
	ImageURL     *string  `json:"image_url"`
}

// getAllProjects lists every project with its category, technology and
// comment references resolved into embedded detail objects. The fan-out
// issues one lookup per referenced table per project; there is no
// batching across projects and no caching.
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.store.ListAll(r.Context(), database.TableProjects, nil)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		enrichedProjects := make([]map[string]any, 0, len(projects))
		for _, project := range projects {
			enriched, err := h.enrichProject(r, project)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			enrichedProjects = append(enrichedProjects, enriched)
		}

		h.responder.WriteJSON(w, enrichedProjects)
	}
}

func (h projectHandler) enrichProject(r *http.Request, project database.Record) (map[string]any, error) {
	ctx := r.Context()

	categoryIDs := database.StringsFromField(project, "category")
	technologyIDs := database.StringsFromField(project, "technologies")
	commentIDs := database.StringsFromField(project, "comments")

	categoryDetails, err := database.RetrieveLinkedDetails(ctx, h.store, database.TableCategories, categoryIDs)
	if err != nil {
		return nil, err
	}

	technologyDetails, err := database.RetrieveLinkedDetails(ctx, h.store, database.TableTechnologies, technologyIDs)
	if err != nil {
		return nil, err
	}

	commentRecords, err := database.RetrieveLinkedDetails(ctx, h.store, database.TableComments, commentIDs)
	if err != nil {
		return nil, err
	}

	var commentUserIDs []string
	for _, comment := range commentRecords {
		commentUserIDs = append(commentUserIDs, database.StringsFromField(comment, "user")...)
	}

	commentUsers, err := database.RetrieveLinkedDetails(ctx, h.store, database.TableUsers, commentUserIDs)
	if err != nil {
		return nil, err
	}
	usersByID := make(map[string]map[string]any, len(commentUsers))
	for _, user := range commentUsers {
		usersByID[user.ID] = flatten(user)
	}

	commentsDetails := make([]map[string]any, 0, len(commentRecords))
	for _, comment := range commentRecords {
		detail := flatten(comment)
		detail["userDetails"] = nil
		if userIDs := database.StringsFromField(comment, "user"); len(userIDs) > 0 {
			if user, ok := usersByID[userIDs[0]]; ok {
				detail["userDetails"] = user
			}
		}
		commentsDetails = append(commentsDetails, detail)
	}

	// Oldest comment first
	sort.SliceStable(commentsDetails, func(i, j int) bool {
		return commentTime(commentsDetails[i]).Before(commentTime(commentsDetails[j]))
	})

	enriched := flatten(project)
	enriched["category"] = categoryIDs
	enriched["technologies"] = technologyIDs
	enriched["categoryDetails"] = flattenAll(categoryDetails)
	enriched["technologyDetails"] = flattenAll(technologyDetails)
	enriched["commentsDetails"] = commentsDetails
	return enriched, nil
}

func commentTime(comment map[string]any) time.Time {
	raw, ok := comment["creation_date"].(string)
	if !ok {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// createProject creates a project in hidden state with no likes. The
// referenced categories and technologies must exist.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body projectRequest
		if err := decodeBody(r, h.logger, &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		categoryIDs := database.ToArray(body.Category)
		technologyIDs := database.ToArray(body.Technologies)

		if err := database.CheckIDsExistence(r.Context(), h.store, database.TableCategories, categoryIDs...); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := database.CheckIDsExistence(r.Context(), h.store, database.TableTechnologies, technologyIDs...); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		fields := map[string]any{
			"name":              sanitize.Text(body.Name),
			"created_by":        sanitize.Text(body.CreatedBy),
			"category":          categoryIDs,
			"likes":             []string{},
			"publishing_status": models.PublishingStatusHidden,
			"description":       sanitize.Text(body.Description),
			"project_link":      sanitize.URL(body.ProjectLink),
			"technologies":      technologyIDs,
		}

		image := []models.Image{}
		if body.ImageURL != nil && *body.ImageURL != "" {
			image = append(image, models.Image{URL: sanitize.URL(*body.ImageURL)})
		}
		fields["image"] = image

		record, err := h.store.Insert(r.Context(), database.TableProjects, fields)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, flatten(record))
	}
}

// updateProject replaces the named fields of a project. Array fields
// (category, technologies) are replaced wholesale; the image is only
// touched when image_url is supplied.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body projectRequest
		if err := decodeBody(r, h.logger, &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		categoryIDs := database.ToArray(body.Category)
		technologyIDs := database.ToArray(body.Technologies)

		if err := database.CheckIDsExistence(r.Context(), h.store, database.TableProjects, body.ID); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := database.CheckIDsExistence(r.Context(), h.store, database.TableCategories, categoryIDs...); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := database.CheckIDsExistence(r.Context(), h.store, database.TableTechnologies, technologyIDs...); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		fields := map[string]any{
			"name":         sanitize.Text(body.Name),
			"created_by":   sanitize.Text(body.CreatedBy),
			"category":     categoryIDs,
			"description":  sanitize.Text(body.Description),
			"project_link": sanitize.URL(body.ProjectLink),
			"technologies": technologyIDs,
		}

		if body.ImageURL != nil {
			if *body.ImageURL != "" {
				fields["image"] = []models.Image{{URL: sanitize.URL(*body.ImageURL)}}
			} else {
				fields["image"] = []models.Image{}
			}
		}

		err := h.store.PatchByID(r.Context(), database.TableProjects, []database.RecordPatch{{
			ID:     sanitize.ID(body.ID),
			Fields: fields,
		}})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{"message": "Update done"})
	}
}

// deleteProject removes a project record.
func (h projectHandler) deleteProject() http.HandlerFunc {
	type request struct {
		ID string `json:"id"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var body request
		if err := decodeBody(r, h.logger, &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if body.ID == "" {
			h.responder.WriteError(w, errs.NewMissingRecordIDError("project"))
			return
		}

		if err := database.CheckIDsExistence(r.Context(), h.store, database.TableProjects, body.ID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.DeleteByIDs(r.Context(), database.TableProjects, []string{body.ID}); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{"message": "Delete done"})
	}
}

// likeProject toggles the caller's id in the project's likes array.
//
// The toggle is a read-modify-write with no optimistic concurrency check;
// two concurrent toggles on the same project can lose one of the updates.
// The record store offers no conditional update to prevent this.
func (h projectHandler) likeProject() http.HandlerFunc {
	type request struct {
		ID   string `json:"id"`
		User string `json:"user"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var body request
		if err := decodeBody(r, h.logger, &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		claims := claimsFromCtx(r.Context())
		if claims == nil || claims.UserID != body.User {
			h.responder.WriteError(w, errs.NewForbiddenError("you can only like with your own account"))
			return
		}

		sanitizedID := sanitize.ID(body.ID)
		records, err := h.store.ListAll(r.Context(), database.TableProjects, database.ByIDs(sanitizedID))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if len(records) == 0 {
			h.responder.WriteError(w, errs.NewNotFoundError(fmt.Sprintf("the project with ID %s does not exist", sanitizedID)))
			return
		}

		if err := database.CheckIDsExistence(r.Context(), h.store, database.TableUsers, body.User); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		likes := database.StringsFromField(records[0], "likes")

		liked := false
		updatedLikes := make([]string, 0, len(likes)+1)
		for _, like := range likes {
			if like == body.User {
				liked = true
				continue
			}
			updatedLikes = append(updatedLikes, like)
		}
		message := "Like removed"
		if !liked {
			updatedLikes = append(updatedLikes, body.User)
			message = "Like added"
		}

		err = h.store.PatchByID(r.Context(), database.TableProjects, []database.RecordPatch{{
			ID:     sanitizedID,
			Fields: map[string]any{"likes": updatedLikes},
		}})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"data":    map[string]string{"message": "Update done"},
			"message": message,
		})
	}
}

// updatePublishingStatus publishes or hides a project.
func (h projectHandler) updatePublishingStatus() http.HandlerFunc {
	type request struct {
		ID               string `json:"id"`
		PublishingStatus string `json:"publishing_status"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var body request
		if err := decodeBody(r, h.logger, &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := database.CheckIDsExistence(r.Context(), h.store, database.TableProjects, body.ID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		err := h.store.PatchByID(r.Context(), database.TableProjects, []database.RecordPatch{{
			ID:     sanitize.ID(body.ID),
			Fields: map[string]any{"publishing_status": body.PublishingStatus},
		}})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"data": map[string]string{"message": "Update done"},
		})
	}
}
