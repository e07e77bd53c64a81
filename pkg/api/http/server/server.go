package server

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/daniel1002-jpg/medication-management-api/pkg/api/http/handlers"
	"github.com/daniel1002-jpg/medication-management-api/pkg/api/http/middleware"
	"github.com/daniel1002-jpg/medication-management-api/pkg/application/usecases"
	"github.com/daniel1002-jpg/medication-management-api/pkg/infrastructure/persistence/postgres"
)

// LoadConfig carga la configuración desde archivo o variables de entorno.
// En modo test se selecciona una base de datos separada.
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	// Nombres de variables de entorno heredados del despliegue existente.
	viper.BindEnv("server.port", "PORT")
	viper.BindEnv("server.env", "NODE_ENV")
	viper.BindEnv("database.host", "DB_HOST")
	viper.BindEnv("database.port", "DB_PORT")
	viper.BindEnv("database.user", "DB_USER")
	viper.BindEnv("database.password", "DB_PASSWORD")
	viper.BindEnv("database.name", "DB_NAME")

	// Valores por defecto
	viper.SetDefault("server.port", "3000")
	viper.SetDefault("server.env", "development")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", "5432")
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "clinical_db_password123")
	viper.SetDefault("database.max_open_conns", 20)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", "5m")

	// En modo test la base por defecto es la de test.
	if viper.GetString("server.env") == "test" {
		viper.SetDefault("database.name", "clinical_cases_test_db")
	} else {
		viper.SetDefault("database.name", "clinical_cases_db")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Sin archivo de configuración: variables de entorno y defaults.
			return nil
		}
		return err
	}

	return nil
}

// ConnectDB establece la conexión agrupada a la base de datos. El pool
// se crea una vez en el arranque y lo comparten todas las peticiones.
func ConnectDB() (*sqlx.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		viper.GetString("database.host"),
		viper.GetString("database.port"),
		viper.GetString("database.user"),
		viper.GetString("database.password"),
		viper.GetString("database.name"),
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(viper.GetInt("database.max_open_conns"))
	db.SetMaxIdleConns(viper.GetInt("database.max_idle_conns"))
	db.SetConnMaxLifetime(viper.GetDuration("database.conn_max_lifetime"))

	return db, nil
}

// InitializeHandler construye el grafo de dependencias completo:
// repositorio → casos de uso → handler.
func InitializeHandler(db *sqlx.DB, logger *zap.Logger) *handlers.PatientHandler {
	patientRepo := postgres.NewPatientRepository(db)

	return handlers.NewPatientHandler(
		usecases.NewCreatePatient(patientRepo),
		usecases.NewGetAllPatients(patientRepo),
		usecases.NewGetPatientByID(patientRepo),
		usecases.NewUpdatePatient(patientRepo),
		usecases.NewDeletePatient(patientRepo),
		logger,
	)
}

// SetupRouter configura el router con los handlers y el middleware.
func SetupRouter(patientHandler *handlers.PatientHandler, logger *zap.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.RequestLogging(logger))

	apiRouter := router.PathPrefix("/api").Subrouter()
	patientHandler.RegisterRoutes(apiRouter)

	// Health check
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	return router
}
