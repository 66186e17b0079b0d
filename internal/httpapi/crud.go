package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"cpmsdash/internal/forms"
	"cpmsdash/internal/models"
	"cpmsdash/internal/queries"
)

type deleteReq struct {
	Confirm string `json:"confirm"`
}

// mountCRUD registers list, detail, create, update and delete for one
// resource. newCreate supplies the form defaults and may be nil.
func mountCRUD[T models.Entity, C, U any](s *Server, r chi.Router, set *queries.Set[T, C, U], newCreate func() C, update bool) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		items, err := set.All(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if items == nil {
			items = []T{}
		}
		writeJSON(w, http.StatusOK, items)
	})

	r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		item, err := set.ByID(r.Context(), id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	})

	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		var form C
		if newCreate != nil {
			form = newCreate()
		}
		if err := decodeJSON(r, &form); err != nil {
			badRequest(w, err)
			return
		}
		if err := s.Forms.Struct(form); err != nil {
			s.writeError(w, r, err)
			return
		}
		created, err := set.Create(r.Context(), form)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	})

	if update {
		r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, err := pathID(r, "id")
			if err != nil {
				s.writeError(w, r, err)
				return
			}
			var form U
			if err := decodeJSON(r, &form); err != nil {
				badRequest(w, err)
				return
			}
			if err := s.Forms.Struct(form); err != nil {
				s.writeError(w, r, err)
				return
			}
			updated, err := set.Update(r.Context(), id, form)
			if err != nil {
				s.writeError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, updated)
		})
	}

	r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		var req deleteReq
		if err := decodeJSON(r, &req); err != nil {
			badRequest(w, err)
			return
		}
		item, err := set.ByID(r.Context(), id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := forms.Confirm(models.ConfirmName(item), req.Confirm); err != nil {
			s.writeError(w, r, err)
			return
		}
		res, err := set.Delete(r.Context(), id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	})
}
