package worker

// ticket_worker.go
// Renders the thermal ticket PDF for a completed sale. Checkout enqueues the
// job post-commit so a slow or failing render never blocks the sale.

import (
	"context"
	"encoding/json"

	"github.com/fydhel24/proyecto-ventas-sub000/internal/infra"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const maxTicketAttempts = 3

type TicketWorker struct {
	ventaRepo      repository.VentaRepository
	rdb            *redis.Client
	pdfStoragePath string
}

func NewTicketWorker(ventaRepo repository.VentaRepository, rdb *redis.Client, pdfStoragePath string) *TicketWorker {
	return &TicketWorker{ventaRepo: ventaRepo, rdb: rdb, pdfStoragePath: pdfStoragePath}
}

func (w *TicketWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload TicketJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("ticket_worker: invalid payload")
		return
	}
	ventaID, err := uuid.Parse(payload.VentaID)
	if err != nil {
		log.Error().Str("venta_id", payload.VentaID).Msg("ticket_worker: invalid venta_id")
		return
	}

	venta, err := w.ventaRepo.FindByID(ctx, ventaID)
	if err != nil {
		log.Error().Err(err).Str("venta_id", payload.VentaID).Msg("ticket_worker: venta not found")
		return
	}

	var pdfPath string
	renderErr := withRetry(ctx, maxTicketAttempts, func(attempt int) error {
		path, err := infra.GenerateTicketPDF(venta, w.pdfStoragePath)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt+1).
				Str("venta_id", payload.VentaID).
				Msg("ticket_worker: render attempt failed")
			return err
		}
		pdfPath = path
		return nil
	})
	if renderErr != nil {
		log.Error().Err(renderErr).Str("venta_id", payload.VentaID).
			Msg("ticket_worker: render failed after all retries")
		SendToDLQ(ctx, w.rdb, QueueTickets, "ticket", raw, renderErr.Error(), maxTicketAttempts)
		return
	}

	log.Info().Str("pdf", pdfPath).Int64("ticket", venta.NumeroTicket).
		Msg("ticket_worker: ticket rendered")
}
