package mis

import (
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"RevTrackSaas/api"
	"RevTrackSaas/api/auth"
	"RevTrackSaas/internal/serviceiface"
)

type MISService struct {
	config map[string]interface{}
	pool   *pgxpool.Pool
}

func NewMISService(cfg map[string]interface{}, pool *pgxpool.Pool) serviceiface.Service {
	return &MISService{config: cfg, pool: pool}
}

func (s *MISService) Name() string { return "mis" }

func (s *MISService) Start() error {
	go StartMISService(s.pool)
	return nil
}

func (s *MISService) Stop() error { return nil }

func StartMISService(pool *pgxpool.Pool) {
	mux := http.NewServeMux()
	mux.HandleFunc("/mis/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("MIS Service is active"))
	})

	viewer := api.SessionMiddleware(auth.RoleFinance, auth.RoleAdmin, auth.RoleClient)
	uploader := api.SessionMiddleware(auth.RoleFinance, auth.RoleAdmin)

	mux.Handle("/mis/list", viewer(GetMIS(pool)))
	mux.Handle("/mis/revenue-chart", viewer(RevenueChart(pool)))
	mux.Handle("/mis/lob-chart", viewer(LOBChart(pool)))
	mux.Handle("/mis/export", viewer(Export(pool)))
	mux.Handle("/mis/upload", uploader(Upload(pool)))

	log.Println("MIS Service started on :6143")
	if err := http.ListenAndServe(":6143", mux); err != nil {
		log.Fatalf("MIS Service failed: %v", err)
	}
}
