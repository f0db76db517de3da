// Package api serves trained embeddings over HTTP.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/skipwalk/internal/embedding"
)

const (
	defaultNeighbors = 10
	maxNeighbors     = 1000
)

// Server answers vector, neighbour and similarity queries for the models in
// its store. Tokens travel as strings and are converted with the codec.
type Server[W comparable] struct {
	store *Store[W]
	codec embedding.KeyCodec[W]
	clock func() time.Time
}

func NewServer[W comparable](store *Store[W], codec embedding.KeyCodec[W]) *Server[W] {
	if store == nil {
		store = NewStore[W]()
	}
	return &Server[W]{
		store: store,
		codec: codec,
		clock: time.Now,
	}
}

// AddModel registers e in the server's store.
func (s *Server[W]) AddModel(id, name string, e *embedding.Embeddings[W]) ModelInfo {
	return s.store.Add(id, name, e, s.clock())
}

func (s *Server[W]) Register(e *echo.Echo) {
	e.GET("/v1/models", s.handleListModels)
	e.GET("/v1/models/:id", s.handleGetModel)
	e.DELETE("/v1/models/:id", s.handleDeleteModel)
	e.GET("/v1/models/:id/vectors", s.handleExportModel)

	e.GET("/v1/vectors/:word", s.handleGetVector)
	e.POST("/v1/neighbors", s.handleNeighbors)
	e.POST("/v1/similarity", s.handleSimilarity)
	e.POST("/v1/embeddings", s.handleEmbeddings)
}

func (s *Server[W]) handleListModels(c *echo.Context) error {
	return writeJSON(c, http.StatusOK, ModelList{Object: "list", Data: s.store.List()})
}

func (s *Server[W]) handleGetModel(c *echo.Context) error {
	id := c.Param("id")
	_, info, ok := s.store.Get(id)
	if !ok {
		return writeNotFound(c, fmt.Sprintf("model %q not found", id))
	}
	return writeJSON(c, http.StatusOK, info)
}

func (s *Server[W]) handleDeleteModel(c *echo.Context) error {
	id := c.Param("id")
	if !s.store.Delete(id) {
		return writeNotFound(c, fmt.Sprintf("model %q not found", id))
	}
	return writeJSON(c, http.StatusOK, DeleteModelResp{ID: id, Object: "model.deleted", Deleted: true})
}

// handleExportModel streams every vector of a model as JSON lines.
func (s *Server[W]) handleExportModel(c *echo.Context) error {
	id := c.Param("id")
	emb, _, ok := s.store.Get(id)
	if !ok {
		return writeNotFound(c, fmt.Sprintf("model %q not found", id))
	}
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "application/x-ndjson")
	res.WriteHeader(http.StatusOK)
	return embedding.WriteJSON(res, emb, s.codec)
}

func (s *Server[W]) handleGetVector(c *echo.Context) error {
	emb, info, ok := s.store.Get(c.QueryParam("model"))
	if !ok {
		return writeNotFound(c, "model not found")
	}
	raw := c.Param("word")
	word, err := s.parseWord(raw)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	vec, ok := emb.Get(word)
	if !ok {
		return writeNotFound(c, fmt.Sprintf("word %q not found", raw))
	}
	return writeJSON(c, http.StatusOK, VectorResponse{
		Object: "vector",
		Model:  info.ID,
		Word:   raw,
		Vector: vec,
	})
}

func (s *Server[W]) handleNeighbors(c *echo.Context) error {
	req, err := decodeJSON[NeighborsRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	k := defaultNeighbors
	if req.K != nil {
		k = *req.K
	}
	if k < 1 || k > maxNeighbors {
		return writeBadRequest(c, fmt.Sprintf("k must be in [1, %d]", maxNeighbors))
	}
	if (req.Word == "") == (req.Vector == nil) {
		return writeBadRequest(c, "exactly one of word and vector is required")
	}
	emb, info, ok := s.store.Get(req.Model)
	if !ok {
		return writeNotFound(c, "model not found")
	}

	var found []embedding.Neighbor[W]
	if req.Word != "" {
		word, perr := s.parseWord(req.Word)
		if perr != nil {
			return writeBadRequest(c, perr.Error())
		}
		found, err = emb.NearestTo(word, k)
	} else {
		found, err = emb.Nearest(req.Vector, k)
	}
	switch {
	case errors.Is(err, embedding.ErrUnknownWord):
		return writeNotFound(c, fmt.Sprintf("word %q not found", req.Word))
	case errors.Is(err, embedding.ErrDimensionMismatch):
		return writeBadRequest(c, err.Error())
	case err != nil:
		return err
	}

	out := NeighborsResponse{Object: "list", Model: info.ID, Data: make([]Neighbor, 0, len(found))}
	for _, n := range found {
		w, ferr := s.formatWord(n.Word)
		if ferr != nil {
			return ferr
		}
		out.Data = append(out.Data, Neighbor{Word: w, Similarity: n.Similarity})
	}
	return writeJSON(c, http.StatusOK, out)
}

func (s *Server[W]) handleSimilarity(c *echo.Context) error {
	req, err := decodeJSON[SimilarityRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	emb, info, ok := s.store.Get(req.Model)
	if !ok {
		return writeNotFound(c, "model not found")
	}
	a, err := s.parseWord(req.A)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), "a", "")
	}
	b, err := s.parseWord(req.B)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), "b", "")
	}
	sim, err := emb.Similarity(a, b)
	if errors.Is(err, embedding.ErrUnknownWord) {
		return writeNotFound(c, err.Error())
	}
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, SimilarityResponse{
		Object:     "similarity",
		Model:      info.ID,
		A:          req.A,
		B:          req.B,
		Similarity: sim,
	})
}

func (s *Server[W]) handleEmbeddings(c *echo.Context) error {
	req, err := decodeJSON[EmbeddingsRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	inputs, err := normalizeInput(req.Input)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), "input", "")
	}
	emb, info, ok := s.store.Get(req.Model)
	if !ok {
		return writeNotFound(c, "model not found")
	}

	out := EmbeddingsResponse{Object: "list", Model: info.ID, Data: make([]EmbeddingData, 0, len(inputs))}
	for i, raw := range inputs {
		word, perr := s.parseWord(raw)
		if perr != nil {
			return writeError(c, http.StatusBadRequest, "invalid_request_error", perr.Error(), fmt.Sprintf("input[%d]", i), "")
		}
		vec, ok := emb.Get(word)
		if !ok {
			return writeError(c, http.StatusNotFound, "not_found_error", fmt.Sprintf("word %q not found", raw), fmt.Sprintf("input[%d]", i), "unknown_word")
		}
		out.Data = append(out.Data, EmbeddingData{Object: "embedding", Index: i, Embedding: vec})
	}
	return writeJSON(c, http.StatusOK, out)
}

func (s *Server[W]) parseWord(raw string) (W, error) {
	if raw == "" {
		var zero W
		return zero, newInvalidRequest("word is required")
	}
	w, err := s.codec.ParseKey([]byte(raw))
	if err != nil {
		return w, newInvalidRequest(fmt.Sprintf("invalid word %q", raw))
	}
	return w, nil
}

func (s *Server[W]) formatWord(w W) (string, error) {
	b, err := s.codec.AppendKey(nil, w)
	return string(b), err
}
