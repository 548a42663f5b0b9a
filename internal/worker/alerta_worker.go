package worker

// alerta_worker.go
// Notifies cash-session variances by email. Deliveries go through a circuit
// breaker so a downed SMTP relay fast-fails instead of stalling the pool.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fydhel24/proyecto-ventas-sub000/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const maxAlertaAttempts = 3

type AlertaWorker struct {
	mailer *infra.Mailer
	cb     *infra.CircuitBreaker
	rdb    *redis.Client
	// to is the supervisor inbox from ALERTA_EMAIL.
	to string
}

func NewAlertaWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, rdb *redis.Client, to string) *AlertaWorker {
	return &AlertaWorker{mailer: mailer, cb: cb, rdb: rdb, to: to}
}

func (w *AlertaWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload AlertaCajaPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alerta_worker: invalid payload")
		return
	}
	if w.to == "" {
		log.Warn().Msg("alerta_worker: ALERTA_EMAIL not configured — skipping")
		return
	}

	subject := fmt.Sprintf("Diferencia en cierre de caja %s", payload.CajaID)
	body := fmt.Sprintf(
		"Se detectó una diferencia al cerrar la caja.\n\n"+
			"Caja: %s\nSucursal: %s\nEsperado: Bs %s\nDeclarado: Bs %s\nDiferencia: Bs %s\n",
		payload.CajaID, payload.SucursalID, payload.Esperado, payload.Declarado, payload.Diferencia)

	sendErr := withRetry(ctx, maxAlertaAttempts, func(attempt int) error {
		err := w.cb.Execute(func() error {
			return w.mailer.Send(w.to, subject, body, "")
		})
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt+1).
				Str("caja_id", payload.CajaID).
				Msg("alerta_worker: send attempt failed")
		}
		return err
	})
	if sendErr != nil {
		log.Error().Err(sendErr).Str("caja_id", payload.CajaID).
			Msg("alerta_worker: delivery failed after all retries")
		SendToDLQ(ctx, w.rdb, QueueAlertas, "alerta_caja", raw, sendErr.Error(), maxAlertaAttempts)
		return
	}

	log.Info().Str("caja_id", payload.CajaID).Str("to", w.to).
		Msg("alerta_worker: variance alert sent")
}
