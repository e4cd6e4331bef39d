package web

import (
	"errors"
	"net/http"

	"github.com/StroziSolci/Projeto-Fifa/controller"
	"github.com/StroziSolci/Projeto-Fifa/dataset"
	"github.com/StroziSolci/Projeto-Fifa/model"
	"github.com/unrolled/render"
)

func rootHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := ctrl.Load(r.Context())
		if err != nil {
			render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			return
		}

		render.HTML(w, http.StatusOK, "home", summary)
	}
}

func healthHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, ctrl.Health(r.Context()))
	}
}

func playerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		club := r.URL.Query().Get("club")
		player := r.URL.Query().Get("player")

		profile, err := ctrl.GetPlayerProfile(r.Context(), club, player)
		if err != nil {
			renderError(w, render, err)
			return
		}

		render.HTML(w, http.StatusOK, "player", profile)
	}
}

func teamHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		club := r.URL.Query().Get("club")

		roster, err := ctrl.GetRoster(r.Context(), club)
		if err != nil {
			renderError(w, render, err)
			return
		}

		render.HTML(w, http.StatusOK, "team", roster)
	}
}

func searchHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")

		var err error
		var results []model.Player = nil
		if query != "" {
			results, err = ctrl.Search(r.Context(), query)
			if err != nil {
				renderError(w, render, err)
				return
			}
		}

		data := map[string]any{
			"q":       query,
			"results": results,
		}
		render.HTML(w, http.StatusOK, "search", data)
	}
}

// renderError maps controller errors to an error page. A view opened before
// the dataset was loaded sends the user back to the home page instead.
func renderError(w http.ResponseWriter, render *render.Render, err error) {
	switch {
	case errors.Is(err, dataset.ErrNotLoaded):
		render.HTML(w, http.StatusServiceUnavailable, "notLoaded", nil)
	case errors.Is(err, model.ErrClubNotFound), errors.Is(err, model.ErrPlayerNotFound):
		render.HTML(w, http.StatusNotFound, "404", err.Error())
	case errors.Is(err, controller.ErrInvalidQuery):
		render.HTML(w, http.StatusBadRequest, "400", err.Error())
	default:
		render.HTML(w, http.StatusInternalServerError, "500", err.Error())
	}
}
