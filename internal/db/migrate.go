package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent and
// portable across SQLite and Postgres.
func Migrate(db *sql.DB, dialect Dialect) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(dialect.Rebind(stmt)); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	for _, t := range levelTypeSeeds {
		if _, err := db.Exec(dialect.Rebind(`INSERT INTO nivel1_tipos (id, nome, descricao, cor_hex, icon_name)
			VALUES (?, ?, ?, ?, ?) ON CONFLICT (id) DO NOTHING`),
			t.id, t.nome, t.descricao, t.cor, t.icon); err != nil {
			return fmt.Errorf("seeding nivel1 type %s: %w", t.id, err)
		}
	}
	return nil
}

type levelTypeSeed struct {
	id, nome, descricao, cor, icon string
}

var levelTypeSeeds = []levelTypeSeed{
	{"frontend", "Frontend", "Interfaces e experiência do usuário", "#3B82F6", "monitor"},
	{"backend", "Backend", "Serviços, APIs e regras de negócio", "#10B981", "server"},
	{"devops", "DevOps", "Infraestrutura, CI/CD e operação", "#F59E0B", "cloud"},
	{"design", "Design", "Protótipos e identidade visual", "#EC4899", "palette"},
	{"integracao", "Integração", "Integrações com sistemas externos", "#8B5CF6", "plug"},
	{"testes", "Testes", "Qualidade e testes automatizados", "#EF4444", "check-circle"},
	{"documentacao", "Documentação", "Manuais e documentação técnica", "#6B7280", "book"},
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		nome        TEXT NOT NULL,
		cliente     TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT 'nao_iniciado'
		            CHECK(status IN ('nao_iniciado','em_andamento','concluido','pausado','cancelado')),
		data_inicio TEXT,
		data_alvo   TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS nivel1_tipos (
		id        TEXT PRIMARY KEY,
		nome      TEXT NOT NULL,
		descricao TEXT NOT NULL DEFAULT '',
		cor_hex   TEXT NOT NULL DEFAULT '',
		icon_name TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS escopos_funcionais (
		id          TEXT PRIMARY KEY,
		projeto_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		nome        TEXT NOT NULL,
		descricao   TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT 'planejado'
		            CHECK(status IN ('planejado','em_andamento','concluido','cancelado')),
		data_inicio TEXT,
		data_alvo   TEXT,
		ordem       INTEGER NOT NULL DEFAULT 0 CHECK(ordem >= 0),
		seq         INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_escopos_funcionais_projeto ON escopos_funcionais(projeto_id)`,

	`CREATE TABLE IF NOT EXISTS nivel1 (
		id                  TEXT PRIMARY KEY,
		escopo_funcional_id TEXT NOT NULL REFERENCES escopos_funcionais(id) ON DELETE CASCADE,
		nivel1_tipo_id      TEXT NOT NULL REFERENCES nivel1_tipos(id),
		nome                TEXT NOT NULL,
		descricao           TEXT NOT NULL DEFAULT '',
		status              TEXT NOT NULL DEFAULT 'planejado'
		                    CHECK(status IN ('planejado','em_andamento','concluido','cancelado')),
		data_inicio         TEXT,
		data_alvo           TEXT,
		ordem               INTEGER NOT NULL DEFAULT 0 CHECK(ordem >= 0),
		seq                 INTEGER NOT NULL DEFAULT 0,
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_nivel1_escopo ON nivel1(escopo_funcional_id)`,

	`CREATE TABLE IF NOT EXISTS nivel2 (
		id          TEXT PRIMARY KEY,
		nivel1_id   TEXT NOT NULL REFERENCES nivel1(id) ON DELETE CASCADE,
		nome        TEXT NOT NULL,
		descricao   TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT 'planejado'
		            CHECK(status IN ('planejado','em_andamento','concluido','cancelado')),
		data_inicio TEXT,
		data_alvo   TEXT,
		ordem       INTEGER NOT NULL DEFAULT 0 CHECK(ordem >= 0),
		seq         INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_nivel2_parent ON nivel2(nivel1_id)`,

	`CREATE TABLE IF NOT EXISTS nivel3 (
		id          TEXT PRIMARY KEY,
		nivel2_id   TEXT NOT NULL REFERENCES nivel2(id) ON DELETE CASCADE,
		nome        TEXT NOT NULL,
		descricao   TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT 'planejado'
		            CHECK(status IN ('planejado','em_andamento','concluido','cancelado')),
		data_inicio TEXT,
		data_alvo   TEXT,
		ordem       INTEGER NOT NULL DEFAULT 0 CHECK(ordem >= 0),
		seq         INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_nivel3_parent ON nivel3(nivel2_id)`,

	`CREATE TABLE IF NOT EXISTS nivel4 (
		id                TEXT PRIMARY KEY,
		nivel3_id         TEXT NOT NULL REFERENCES nivel3(id) ON DELETE CASCADE,
		nome              TEXT NOT NULL,
		descricao         TEXT NOT NULL DEFAULT '',
		status            TEXT NOT NULL DEFAULT 'planejado'
		                  CHECK(status IN ('planejado','em_andamento','concluido','cancelado')),
		data_inicio       TEXT,
		data_alvo         TEXT,
		ordem             INTEGER NOT NULL DEFAULT 0 CHECK(ordem >= 0),
		horas_estimadas   DOUBLE PRECISION CHECK(horas_estimadas >= 0),
		horas_trabalhadas DOUBLE PRECISION CHECK(horas_trabalhadas >= 0),
		seq               INTEGER NOT NULL DEFAULT 0,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_nivel4_parent ON nivel4(nivel3_id)`,

	`CREATE TABLE IF NOT EXISTS cronograma (
		id                   TEXT PRIMARY KEY,
		projeto_id           TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		fase                 TEXT NOT NULL,
		descricao            TEXT NOT NULL DEFAULT '',
		data_inicio          TEXT NOT NULL,
		data_fim             TEXT NOT NULL,
		data_inicio_real     TEXT,
		data_fim_real        TEXT,
		percentual_concluido INTEGER NOT NULL DEFAULT 0
		                     CHECK(percentual_concluido >= 0 AND percentual_concluido <= 100),
		responsavel          TEXT NOT NULL DEFAULT '',
		dependencias         TEXT NOT NULL DEFAULT '',
		observacoes          TEXT NOT NULL DEFAULT '',
		status               TEXT NOT NULL DEFAULT 'nao_iniciado'
		                     CHECK(status IN ('nao_iniciado','em_andamento','concluido','cancelado')),
		created_at           TEXT NOT NULL,
		updated_at           TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_cronograma_projeto ON cronograma(projeto_id)`,
	`CREATE INDEX IF NOT EXISTS idx_cronograma_inicio ON cronograma(data_inicio)`,
}
