package validations

import (
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"RevTrackSaas/api"
	"RevTrackSaas/api/auth"
	"RevTrackSaas/internal/serviceiface"
)

type ValidationService struct {
	config map[string]interface{}
	pool   *pgxpool.Pool
}

func NewValidationService(cfg map[string]interface{}, pool *pgxpool.Pool) serviceiface.Service {
	return &ValidationService{config: cfg, pool: pool}
}

func (s *ValidationService) Name() string { return "validation" }

func (s *ValidationService) Start() error {
	go StartValidationService(s.pool)
	return nil
}

func (s *ValidationService) Stop() error { return nil }

func StartValidationService(pool *pgxpool.Pool) {
	mux := http.NewServeMux()
	mux.HandleFunc("/validation/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Validation Service is active"))
	})

	viewer := api.SessionMiddleware(auth.RoleFinance, auth.RoleAdmin, auth.RoleClient)
	approver := api.SessionMiddleware(auth.RoleFinance, auth.RoleAdmin)

	mux.Handle("/validation/list", viewer(GetValidations(pool)))
	mux.Handle("/validation/status-counts", viewer(StatusCounts(pool)))
	mux.Handle("/validation/export", viewer(Export(pool)))
	mux.Handle("/validation/bulk-update-status", approver(BulkUpdateStatus(pool)))

	log.Println("Validation Service started on :4143")
	if err := http.ListenAndServe(":4143", mux); err != nil {
		log.Fatalf("Validation Service failed: %v", err)
	}
}
