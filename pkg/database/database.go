package database

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func NewPool(dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	log.Println("Database connected successfully")

	return pool, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS punto_venta (
		id UUID PRIMARY KEY,
		nombre VARCHAR(200) NOT NULL,
		ubicacion VARCHAR(200) NOT NULL DEFAULT '',
		tipo VARCHAR(50) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS usuarios (
		id UUID PRIMARY KEY,
		nombre VARCHAR(150) NOT NULL,
		email VARCHAR(150) NOT NULL UNIQUE,
		password_hash VARCHAR(200) NOT NULL,
		rol VARCHAR(20) NOT NULL,
		punto_venta_id UUID REFERENCES punto_venta(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS libros (
		id UUID PRIMARY KEY,
		nombre VARCHAR(200) NOT NULL,
		autor VARCHAR(200) NOT NULL,
		precio NUMERIC(12,2) NOT NULL DEFAULT 0,
		stock_minimo INT NOT NULL DEFAULT 0,
		fecha_creacion TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS inventario_libro (
		id UUID PRIMARY KEY,
		libro_id UUID NOT NULL UNIQUE REFERENCES libros(id),
		stock INT NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS inventario_pv (
		id UUID PRIMARY KEY,
		libro_id UUID NOT NULL REFERENCES libros(id),
		punto_venta_id UUID NOT NULL REFERENCES punto_venta(id),
		stock INT NOT NULL DEFAULT 0,
		stock_minimo INT NOT NULL DEFAULT 5,
		UNIQUE (libro_id, punto_venta_id)
	)`,
	`CREATE TABLE IF NOT EXISTS movimiento_libro (
		id UUID PRIMARY KEY,
		inventario_id UUID NOT NULL REFERENCES inventario_libro(id),
		tipo VARCHAR(20) NOT NULL,
		cantidad INT NOT NULL,
		usuario_id UUID REFERENCES usuarios(id),
		observaciones TEXT,
		fecha_movimiento TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_movimiento_fecha ON movimiento_libro (fecha_movimiento DESC)`,
}

// Migrate creates the schema when it does not exist yet. Safe to run on
// every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
