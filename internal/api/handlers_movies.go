// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marquee/internal/models"
)

// Movies handles GET /api/v1/movies
//
// @Summary List catalog movies
// @Description Returns every catalog movie ordered by id.
// @Tags Movies
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.MoviesResponse}
// @Router /movies [get]
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	all := h.engine.Dataset().Catalog.Items()
	movies := make([]models.Movie, 0, len(all))
	for _, item := range all {
		movies = append(movies, h.toMovie(item))
	}

	respondSuccess(w, r, models.MoviesResponse{Movies: movies, Total: len(movies)}, start)
}

// Movie handles GET /api/v1/movies/{id}
//
// @Summary Get one movie
// @Tags Movies
// @Produce json
// @Param id path int true "Movie id"
// @Success 200 {object} models.APIResponse{data=models.Movie}
// @Failure 400 {object} models.APIResponse "Invalid id"
// @Failure 404 {object} models.APIResponse "No such movie"
// @Router /movies/{id} [get]
func (h *Handler) Movie(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 0 {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "id must be a non-negative integer", nil)
		return
	}

	item, ok := h.engine.Dataset().Catalog.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Movie not found", nil)
		return
	}

	respondSuccess(w, r, h.toMovie(item), start)
}

// Genres handles GET /api/v1/genres
//
// @Summary List genres
// @Description Returns the distinct genres present in the catalog, sorted.
// @Tags Movies
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.GenresResponse}
// @Router /genres [get]
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	genres := h.engine.Dataset().Catalog.Genres()
	if genres == nil {
		genres = []string{}
	}
	respondSuccess(w, r, models.GenresResponse{Genres: genres}, start)
}
