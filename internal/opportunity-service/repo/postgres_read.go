package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/radieske/value-bet-platform-poc/internal/opportunity-service/dto"
)

// ReadRepo concentra as consultas do dashboard sobre as oportunidades
// persistidas pelo worker, mais a liquidação de resultado
type ReadRepo struct {
	DB *sql.DB
}

// Filter restringe a listagem de oportunidades
type Filter struct {
	Sport      string
	Confidence string
	Status     string
	MinEdge    *float64 // filtro do consumidor por edge mínimo (ex: 0 para só +EV)
}

const opportunityColumns = `
	id, sport, match, market, selection, odds, book_odds,
	edge_percentage, expected_value, event_time, confidence, status, result, updated_at
`

func scanOpportunity(scan func(...any) error) (dto.OpportunityRow, error) {
	var o dto.OpportunityRow
	err := scan(
		&o.ID, &o.Sport, &o.Match, &o.Market, &o.Selection,
		&o.Odds, &o.BookOdds, &o.EdgePercentage, &o.ExpectedValue,
		&o.EventTime, &o.Confidence, &o.Status, &o.Result, &o.UpdatedAt,
	)
	return o, err
}

// ListOpportunities retorna as oportunidades mais recentes, opcionalmente filtradas
func (r *ReadRepo) ListOpportunities(ctx context.Context, f Filter) ([]dto.OpportunityRow, error) {
	q := `SELECT ` + opportunityColumns + ` FROM opportunities WHERE 1=1`
	args := []any{}

	add := func(cond string, v any) {
		args = append(args, v)
		q += fmt.Sprintf(" AND "+cond, len(args))
	}
	if f.Sport != "" {
		add("sport = $%d", f.Sport)
	}
	if f.Confidence != "" {
		add("confidence = $%d", f.Confidence)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.MinEdge != nil {
		add("edge_percentage > $%d", *f.MinEdge)
	}
	q += ` ORDER BY edge_percentage DESC, event_time ASC`

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []dto.OpportunityRow
	for rows.Next() {
		o, err := scanOpportunity(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// GetOpportunity busca uma oportunidade pelo id
func (r *ReadRepo) GetOpportunity(ctx context.Context, id int64) (dto.OpportunityRow, error) {
	q := `SELECT ` + opportunityColumns + ` FROM opportunities WHERE id = $1`
	return scanOpportunity(r.DB.QueryRowContext(ctx, q, id).Scan)
}

// ListHistory retorna a série de movimento de odds de uma oportunidade
func (r *ReadRepo) ListHistory(ctx context.Context, id int64) ([]dto.OddsHistoryEntry, error) {
	const q = `
		SELECT odds, recorded_at
		FROM odds_history
		WHERE opportunity_id = $1
		ORDER BY recorded_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []dto.OddsHistoryEntry
	for rows.Next() {
		var h dto.OddsHistoryEntry
		if err := rows.Scan(&h.Odds, &h.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// ListSports agrega a contagem de oportunidades ativas por esporte
func (r *ReadRepo) ListSports(ctx context.Context) ([]dto.Sport, error) {
	const q = `
		SELECT sport, COUNT(*)
		FROM opportunities
		WHERE status = 'active'
		GROUP BY sport
		ORDER BY sport
	`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []dto.Sport
	for rows.Next() {
		var s dto.Sport
		if err := rows.Scan(&s.Sport, &s.Count); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// UpdateResult liquida uma oportunidade: grava o resultado e encerra o status
func (r *ReadRepo) UpdateResult(ctx context.Context, id int64, result string) error {
	const q = `
		UPDATE opportunities
		SET result = $2, status = 'settled', updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, q, id, result)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
