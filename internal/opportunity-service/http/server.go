package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/radieske/value-bet-platform-poc/internal/opportunity-service/cache"
	"github.com/radieske/value-bet-platform-poc/internal/opportunity-service/dto"
	"github.com/radieske/value-bet-platform-poc/internal/opportunity-service/repo"
	"github.com/radieske/value-bet-platform-poc/pkg/oddsmath"
)

// API expõe os endpoints REST de consulta de oportunidades de aposta
// Utiliza um repositório de leitura (Postgres) e cache (Redis)
type API struct {
	ReadRepo *repo.ReadRepo // acesso ao banco de dados
	Cache    *cache.Cache   // cache das listagens por esporte
}

// Router retorna o roteador HTTP com os endpoints REST
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/v1/opportunities", a.listOpportunities)                // Lista oportunidades (filtros via query)
	r.Get("/v1/opportunities/{id}", a.getOpportunity)              // Detalhe de uma oportunidade
	r.Get("/v1/opportunities/{id}/history", a.getHistory)          // Movimento de odds
	r.Patch("/v1/opportunities/{id}/result", a.updateResult)       // Liquidação
	r.Get("/v1/sports", a.listSports)                              // Esportes com oportunidades ativas
	r.Post("/v1/kelly", a.kellyPreview)                            // Preview de stake (critério de Kelly)
	return r
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// listOpportunities retorna as oportunidades, preferencialmente do cache
// Filtros: sport, confidence, status, minEdge (política do consumidor)
func (a *API) listOpportunities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repo.Filter{
		Sport:      q.Get("sport"),
		Confidence: q.Get("confidence"),
		Status:     q.Get("status"),
	}
	if raw := q.Get("minEdge"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid minEdge"})
			return
		}
		f.MinEdge = &v
	}

	// só a listagem simples por esporte passa pelo cache
	cacheable := f.Sport != "" && f.Confidence == "" && f.Status == "" && f.MinEdge == nil
	if cacheable {
		var fromCache []dto.OpportunityRow
		if ok, _ := a.Cache.GetOpportunities(r.Context(), f.Sport, &fromCache); ok {
			writeJSON(w, http.StatusOK, fromCache)
			return
		}
	}

	ops, err := a.ReadRepo.ListOpportunities(r.Context(), f)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if cacheable {
		_ = a.Cache.SetOpportunities(r.Context(), f.Sport, ops, 30*time.Second) // salva no cache por 30s
	}
	writeJSON(w, http.StatusOK, ops)
}

// getOpportunity retorna uma oportunidade pelo id
func (a *API) getOpportunity(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	o, err := a.ReadRepo.GetOpportunity(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// getHistory retorna a série de odds registrada a cada upsert
func (a *API) getHistory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	h, err := a.ReadRepo.ListHistory(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, h)
}

// updateResult liquida uma oportunidade (win/loss/push)
func (a *API) updateResult(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	var body dto.ResultUpdate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json"})
		return
	}
	switch body.Result {
	case "win", "loss", "push":
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "result must be win, loss or push"})
		return
	}

	if err := a.ReadRepo.UpdateResult(r.Context(), id, body.Result); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "settled"})
}

// listSports retorna os esportes com oportunidades ativas
func (a *API) listSports(w http.ResponseWriter, r *http.Request) {
	sports, err := a.ReadRepo.ListSports(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, sports)
}

// kellyPreview calcula o stake recomendado para o dashboard
// Aceita dados parciais do usuário, por isso valida aqui e não no pipeline
func (a *API) kellyPreview(w http.ResponseWriter, r *http.Request) {
	var req dto.KellyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json"})
		return
	}
	if req.Bankroll <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bankroll must be positive"})
		return
	}

	stake, err := oddsmath.CalculateKelly(req.Bankroll, req.BookOdds, req.FairOdds)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, dto.KellyResponse{
		Stake:    stake,
		Fraction: stake / req.Bankroll,
	})
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
