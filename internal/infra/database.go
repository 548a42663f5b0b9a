package infra

import (
	"fmt"

	"github.com/fydhel24/proyecto-ventas-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection, runs AutoMigrate to create or
// update all tables, then applies the idempotent SQL patches that GORM cannot
// express (partial unique indexes, sequences).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations is shared with the integration-test harness so containers get
// the same schema as a deployed instance.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Sucursal{},
		&model.Usuario{},
		&model.Producto{},
		&model.Inventario{},
		&model.Movimiento{},
		&model.MovimientoInventario{},
		&model.Caja{},
		&model.Venta{},
		&model.DetalleVenta{},
		&model.Mesa{},
		&model.Reserva{},
		&model.DetalleReserva{},
		&model.Proveedor{},
		&model.Compra{},
		&model.DetalleCompra{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot produce.
// Each statement is guarded so re-running on an already-patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// At most one open caja per sucursal. The service checks before
		// inserting, but only this index closes the concurrent-open race.
		{"partial unique index uni_cajas_sucursal_abierta", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uni_cajas_sucursal_abierta') THEN
    CREATE UNIQUE INDEX uni_cajas_sucursal_abierta
        ON cajas (sucursal_id)
        WHERE fecha_cierre IS NULL;
  END IF;
END $$`},
		// Ticket numbers come from a dedicated sequence so concurrent
		// checkouts never collide.
		{"sequence ventas_numero_ticket_seq", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_class WHERE relkind = 'S' AND relname = 'ventas_numero_ticket_seq') THEN
    CREATE SEQUENCE ventas_numero_ticket_seq START 1;
  END IF;
END $$`},
		// Movement lines are append-only: revoke UPDATE/DELETE at the DB
		// level so no code path can rewrite audit history.
		{"movimiento_inventarios append-only trigger", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_mov_inv_append_only') THEN
    CREATE OR REPLACE FUNCTION reject_mov_inv_mutation() RETURNS trigger AS $f$
    BEGIN
      RAISE EXCEPTION 'movimiento_inventarios is append-only';
    END;
    $f$ LANGUAGE plpgsql;
    CREATE TRIGGER trg_mov_inv_append_only
      BEFORE UPDATE OR DELETE ON movimiento_inventarios
      FOR EACH ROW EXECUTE FUNCTION reject_mov_inv_mutation();
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
