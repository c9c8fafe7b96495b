package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/radieske/value-bet-platform-poc/pkg/contracts/events"
)

// PostgresRepo implementa a persistência de oportunidades em um banco Postgres
// DB: conexão com o banco de dados
type PostgresRepo struct {
	DB *sql.DB
}

// NewPostgresRepo retorna uma instância de repositório Postgres
func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{DB: db}
}

// UpsertOpportunity insere ou atualiza uma oportunidade
// Utiliza ON CONFLICT na tripla (match, market, selection) para que reprocessar
// o mesmo evento atualize odds/edge/EV em vez de duplicar a linha
func (r *PostgresRepo) UpsertOpportunity(ctx context.Context, o events.Opportunity) (int64, error) {
	const q = `
		INSERT INTO opportunities
		  (sport, match, market, selection, odds, book_odds, edge_percentage,
		   expected_value, event_time, confidence, status, result, updated_at)
		VALUES
		  ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (match, market, selection) DO UPDATE SET
		  sport           = EXCLUDED.sport,
		  odds            = EXCLUDED.odds,
		  book_odds       = EXCLUDED.book_odds,
		  edge_percentage = EXCLUDED.edge_percentage,
		  expected_value  = EXCLUDED.expected_value,
		  event_time      = EXCLUDED.event_time,
		  confidence      = EXCLUDED.confidence,
		  status          = EXCLUDED.status,
		  updated_at      = EXCLUDED.updated_at
		RETURNING id
	`
	var id int64
	err := r.DB.QueryRowContext(ctx, q,
		o.Sport, o.Match, o.Market, o.Selection,
		o.Odds, o.BookOdds, o.EdgePercentage, o.ExpectedValue,
		o.EventTime, string(o.Confidence), o.Status, o.Result,
		time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// InsertOddsHistory registra a odd corrente no histórico de movimento
// Uma linha é adicionada a cada upsert para preservar a série temporal
func (r *PostgresRepo) InsertOddsHistory(ctx context.Context, opportunityID int64, odds string, recordedAt time.Time) error {
	const q = `
		INSERT INTO odds_history (opportunity_id, odds, recorded_at)
		VALUES ($1,$2,$3)
	`
	_, err := r.DB.ExecContext(ctx, q, opportunityID, odds, recordedAt)
	return err
}
