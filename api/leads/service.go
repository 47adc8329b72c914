package leads

import (
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"RevTrackSaas/api"
	"RevTrackSaas/api/auth"
	"RevTrackSaas/internal/serviceiface"
)

type LeadService struct {
	config map[string]interface{}
	pool   *pgxpool.Pool
}

func NewLeadService(cfg map[string]interface{}, pool *pgxpool.Pool) serviceiface.Service {
	return &LeadService{config: cfg, pool: pool}
}

func (s *LeadService) Name() string { return "leads" }

func (s *LeadService) Start() error {
	go StartLeadService(s.pool)
	return nil
}

func (s *LeadService) Stop() error { return nil }

func StartLeadService(pool *pgxpool.Pool) {
	mux := http.NewServeMux()
	mux.HandleFunc("/leads/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Lead Service is active"))
	})

	viewer := api.SessionMiddleware(auth.RoleFinance, auth.RoleAdmin, auth.RoleClient)
	// Clients approve their own leads; finance and admin approve anything.
	approver := api.SessionMiddleware(auth.RoleFinance, auth.RoleAdmin, auth.RoleClient)
	uploader := api.SessionMiddleware(auth.RoleFinance, auth.RoleAdmin)

	mux.Handle("/leads/list", viewer(GetLeads(pool)))
	mux.Handle("/leads/export", viewer(Export(pool)))
	mux.Handle("/leads/update-approval", approver(UpdateApproval(pool)))
	mux.Handle("/leads/bulk-update-approval", approver(BulkUpdateApproval(pool)))
	mux.Handle("/leads/update-revised-date", approver(UpdateRevisedDate(pool)))
	mux.Handle("/leads/upload", uploader(Upload(pool)))

	log.Println("Lead Service started on :5143")
	if err := http.ListenAndServe(":5143", mux); err != nil {
		log.Fatalf("Lead Service failed: %v", err)
	}
}
