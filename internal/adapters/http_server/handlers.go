package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"agendesaude/internal/app"
	"agendesaude/internal/domain"
)

type Handlers struct {
	Clinics *app.ClinicService
	Reviews *app.ReviewService
	// Limit wraps the mutating routes when set.
	Limit func(http.Handler) http.Handler
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(r chi.Router) {
		r.Get("/clinics", h.listClinics)
		r.Get("/clinics/near", h.listClinicsNear)
		r.Get("/clinics/{id}", h.getClinic)
		r.Get("/clinics/{id}/reviews", h.listClinicReviews)
		r.Get("/reviews/{id}", h.getReview)
		r.Get("/authors/{id}/reviews", h.listAuthorReviews)

		r.Group(func(g chi.Router) {
			if h.Limit != nil {
				g.Use(h.Limit)
			}
			g.Post("/clinics", h.createClinic)
			g.Patch("/clinics/{id}", h.updateClinic)
			g.Delete("/clinics/{id}", h.deleteClinic)
			g.Post("/clinics/{id}/reviews", h.createReview)
			g.Patch("/reviews/{id}", h.updateReview)
			g.Delete("/reviews/{id}", h.deleteReview)
			g.Post("/reviews/{id}/response", h.respondReview)
		})
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps the domain error taxonomy onto problem+json responses.
func writeError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	var de *domain.DuplicateReviewError
	switch {
	case errors.As(err, &ve):
		writeProblem(w, http.StatusBadRequest, "Invalid Input", ve.Error())
	case errors.As(err, &de):
		writeProblem(w, http.StatusConflict, "Duplicate Review", de.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// ---- clinics ----

func (h *Handlers) listClinics(w http.ResponseWriter, r *http.Request) {
	cs, err := h.Clinics.List(r.Context(), r.URL.Query().Get("specialty"), r.URL.Query().Get("neighborhood"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

func (h *Handlers) listClinicsNear(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(q.Get("lon"), 64)
	if errLat != nil || errLon != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Coordinates", "lat and lon must be numbers")
		return
	}
	radius := 10.0
	if rs := q.Get("radius_km"); rs != "" {
		v, err := strconv.ParseFloat(rs, 64)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid Radius", "radius_km must be a number")
			return
		}
		radius = v
	}
	cs, err := h.Clinics.ListNear(r.Context(), lat, lon, radius)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

func (h *Handlers) getClinic(w http.ResponseWriter, r *http.Request) {
	c, err := h.Clinics.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	etag, body := calcETagAndBody(c)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write getClinic body")
	}
}

type clinicBody struct {
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Specialties  []string       `json:"specialties"`
	Address      string         `json:"address"`
	Neighborhood string         `json:"neighborhood"`
	Phone        string         `json:"phone"`
	WhatsApp     string         `json:"whatsapp"`
	Hours        string         `json:"hours"`
	Description  string         `json:"description"`
	Image        string         `json:"image"`
	Location     *domain.Coords `json:"location"`
}

func (h *Handlers) createClinic(w http.ResponseWriter, r *http.Request) {
	var in clinicBody
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	c, err := h.Clinics.Create(r.Context(), domain.Clinic{
		Name:         in.Name,
		Email:        in.Email,
		Specialties:  in.Specialties,
		Address:      in.Address,
		Neighborhood: in.Neighborhood,
		Phone:        in.Phone,
		WhatsApp:     in.WhatsApp,
		Hours:        in.Hours,
		Description:  in.Description,
		Image:        in.Image,
		Location:     in.Location,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

type clinicPatchBody struct {
	Name         *string        `json:"name"`
	Email        *string        `json:"email"`
	Specialties  []string       `json:"specialties"`
	Address      *string        `json:"address"`
	Neighborhood *string        `json:"neighborhood"`
	Phone        *string        `json:"phone"`
	WhatsApp     *string        `json:"whatsapp"`
	Hours        *string        `json:"hours"`
	Description  *string        `json:"description"`
	Image        *string        `json:"image"`
	Location     *domain.Coords `json:"location"`
}

func (h *Handlers) updateClinic(w http.ResponseWriter, r *http.Request) {
	var in clinicPatchBody
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	c, err := h.Clinics.Update(r.Context(), chi.URLParam(r, "id"), domain.ClinicUpdate{
		Name:         in.Name,
		Email:        in.Email,
		Specialties:  in.Specialties,
		Address:      in.Address,
		Neighborhood: in.Neighborhood,
		Phone:        in.Phone,
		WhatsApp:     in.WhatsApp,
		Hours:        in.Hours,
		Description:  in.Description,
		Image:        in.Image,
		Location:     in.Location,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handlers) deleteClinic(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Clinics.SoftDelete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- reviews ----

type reviewBody struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "identity headers missing")
		return
	}
	var in reviewBody
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	rev, err := h.Reviews.Create(r.Context(), chi.URLParam(r, "id"), user.ID, user.Name, in.Rating, in.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rev)
}

type reviewPatchBody struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

func (h *Handlers) updateReview(w http.ResponseWriter, r *http.Request) {
	var in reviewPatchBody
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	rev, err := h.Reviews.Update(r.Context(), chi.URLParam(r, "id"), app.ReviewPatch{Rating: in.Rating, Comment: in.Comment})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rev)
}

// deleteReview answers 204 whether or not the review existed: delete is
// idempotent by contract.
func (h *Handlers) deleteReview(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Reviews.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type respondBody struct {
	Text string `json:"text"`
}

func (h *Handlers) respondReview(w http.ResponseWriter, r *http.Request) {
	var in respondBody
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	rev, err := h.Reviews.Respond(r.Context(), chi.URLParam(r, "id"), in.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rev)
}

func (h *Handlers) getReview(w http.ResponseWriter, r *http.Request) {
	rev, err := h.Reviews.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rev)
}

func (h *Handlers) listClinicReviews(w http.ResponseWriter, r *http.Request) {
	rs, err := h.Reviews.ListByClinic(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rs)
}

func (h *Handlers) listAuthorReviews(w http.ResponseWriter, r *http.Request) {
	rs, err := h.Reviews.ListByAuthor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rs)
}
