package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/registroos/registro-os/internal"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sectors, catalogs and users for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"apontamentos", "ordens_servico", "catalogos", "setores", "usuarios"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		seedSectors(db)
		seedCatalogs(db)
		seedUsers(db, cfg)
	},
}

func seedSectors(db *gorm.DB) {
	type sectorSeed struct {
		Name       string
		Department string
	}
	sectors := []sectorSeed{
		{"Laboratorio de Ensaios Eletricos Motores", "MOTORES"},
		{"Laboratorio de Ensaios Eletricos Transformadores", "TRANSFORMADORES"},
		{"Mecanica Dia", "MOTORES"},
		{"Mecanica Noite", "MOTORES"},
		{"Bobinagem", "MOTORES"},
		{"Pintura e Acabamento", "MOTORES"},
		{"PCP", "ADMINISTRATIVO"},
		{"Comercial", "ADMINISTRATIVO"},
	}

	for _, s := range sectors {
		var exists int
		if err := db.Raw("SELECT 1 FROM setores WHERE name = ?", s.Name).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec("INSERT INTO setores (name, department, is_active, created_at, updated_at) VALUES (?, ?, true, now(), now())", s.Name, s.Department).Error; err != nil {
			log.Fatalf("failed to insert sector %s: %v", s.Name, err)
		}
		fmt.Println("Seeded sector:", s.Name)
	}
}

func seedCatalogs(db *gorm.DB) {
	type itemSeed struct {
		Kind        string
		Code        string
		Description string
	}
	items := []itemSeed{
		{"machine_types", "MOTOR_INDUCAO", "Motor de inducao trifasico"},
		{"machine_types", "MOTOR_CC", "Motor de corrente continua"},
		{"machine_types", "TRANSFORMADOR", "Transformador de potencia"},
		{"machine_types", "GERADOR", "Gerador sincrono"},
		{"activity_types", "DESMONTAGEM", "Desmontagem do equipamento"},
		{"activity_types", "BOBINAGEM", "Rebobinagem do estator"},
		{"activity_types", "ENSAIO_ELETRICO", "Ensaio eletrico de bancada"},
		{"activity_types", "MONTAGEM_FINAL", "Montagem final e acabamento"},
		{"failure_causes", "ISOLACAO_DEGRADADA", "Isolacao do enrolamento degradada"},
		{"failure_causes", "ROLAMENTO_DANIFICADO", "Rolamento danificado"},
		{"failure_causes", "CURTO_ENTRE_ESPIRAS", "Curto-circuito entre espiras"},
		{"failure_causes", "ERRO_MONTAGEM", "Erro na montagem anterior"},
		{"test_types", "RESISTENCIA_OHMICA", "Medicao de resistencia ohmica"},
		{"test_types", "RIGIDEZ_DIELETRICA", "Ensaio de rigidez dieletrica"},
		{"test_types", "ENSAIO_VAZIO", "Ensaio em vazio"},
	}

	for _, it := range items {
		var exists int
		if err := db.Raw("SELECT 1 FROM catalogos WHERE kind = ? AND code = ?", it.Kind, it.Code).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec("INSERT INTO catalogos (kind, code, description, is_active, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())", it.Kind, it.Code, it.Description).Error; err != nil {
			log.Fatalf("failed to insert catalog item %s/%s: %v", it.Kind, it.Code, err)
		}
		fmt.Println("Seeded catalog item:", it.Kind, it.Code)
	}
}

func seedUsers(db *gorm.DB, cfg *internal.Config) {
	password := "password"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)

	type userSeed struct {
		Email             string
		Name              string
		Role              string
		Sector            string
		Department        string
		WorksInProduction bool
	}
	users := []userSeed{
		{"admin@registro-os.local", "Administrador", "ADMIN", "", "ADMINISTRATIVO", false},
		{"supervisor.mecanica@registro-os.local", "Supervisor Mecanica", "SUPERVISOR", "Mecanica Dia", "MOTORES", true},
		{"tecnico.mecanica@registro-os.local", "Tecnico Mecanica", "USER", "Mecanica Dia", "MOTORES", true},
		{"pcp@registro-os.local", "Planejador PCP", "PCP", "PCP", "ADMINISTRATIVO", false},
	}

	for _, u := range users {
		var exists int
		if err := db.Raw("SELECT 1 FROM usuarios WHERE email = ?", u.Email).Row().Scan(&exists); err == nil {
			fmt.Println("user already exists:", u.Email)
			continue
		}
		if err := db.Exec(
			"INSERT INTO usuarios (email, name, password_hash, role, sector, department, works_in_production, is_approved, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, true, true, now(), now())",
			u.Email, u.Name, string(hash), u.Role, u.Sector, u.Department, u.WorksInProduction,
		).Error; err != nil {
			log.Fatalf("failed to insert user %s: %v", u.Email, err)
		}
		fmt.Println("Seeded user:", u.Email)
	}
}
