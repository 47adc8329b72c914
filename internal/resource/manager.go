package resource

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"RevTrackSaas/internal/logger"
	"RevTrackSaas/internal/serviceiface"
)

// ResourceManager polls every registered service health endpoint and audits
// the ones that stop answering. Services register their endpoints at startup
// via AddEndpoint; the defaults cover the fixed local ports.
type ResourceManager struct {
	endpoints         map[string]string
	mu                sync.RWMutex
	stopChan          chan struct{}
	heartbeatInterval time.Duration
	client            *http.Client
}

var defaultEndpoints = map[string]string{
	"gateway":    "http://localhost:8081/health",
	"validation": "http://localhost:4143/validation/health",
	"leads":      "http://localhost:5143/leads/health",
	"mis":        "http://localhost:6143/mis/health",
}

func NewResourceManagerService(cfg map[string]interface{}) serviceiface.Service {
	interval := 30 * time.Second // default
	if val, ok := cfg["heartbeat_interval"]; ok {
		switch v := val.(type) {
		case string:
			if d, err := time.ParseDuration(v); err == nil {
				interval = d
			}
		case float64:
			interval = time.Duration(v) * time.Second
		}
	}
	endpoints := make(map[string]string, len(defaultEndpoints))
	for name, url := range defaultEndpoints {
		endpoints[name] = url
	}
	return &ResourceManager{
		endpoints:         endpoints,
		stopChan:          make(chan struct{}),
		heartbeatInterval: interval,
		client:            &http.Client{Timeout: 5 * time.Second},
	}
}

func (rm *ResourceManager) Name() string { return "resourcemanager" }

func (rm *ResourceManager) Start() error {
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit("ResourceManager started")
	}
	go rm.heartbeatLoop()
	return nil
}

func (rm *ResourceManager) Stop() error {
	close(rm.stopChan)
	return nil
}

func (rm *ResourceManager) heartbeatLoop() {
	ticker := time.NewTicker(rm.heartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-rm.stopChan:
			return
		case <-ticker.C:
			rm.checkAll()
		}
	}
}

func (rm *ResourceManager) checkAll() {
	rm.mu.RLock()
	endpoints := make(map[string]string, len(rm.endpoints))
	for name, url := range rm.endpoints {
		endpoints[name] = url
	}
	rm.mu.RUnlock()

	for name, url := range endpoints {
		resp, err := rm.client.Get(url)
		if err != nil {
			if logger.GlobalLogger != nil {
				logger.GlobalLogger.LogAudit(fmt.Sprintf("heartbeat: %s unreachable: %v", name, err))
			}
			continue
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK && logger.GlobalLogger != nil {
			logger.GlobalLogger.LogAudit(fmt.Sprintf("heartbeat: %s returned %d", name, resp.StatusCode))
		}
	}
}

func (rm *ResourceManager) AddEndpoint(name, url string) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.endpoints[name] = url
}

func (rm *ResourceManager) RemoveEndpoint(name string) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	delete(rm.endpoints, name)
}

func (rm *ResourceManager) ListEndpoints() []string {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	names := make([]string, 0, len(rm.endpoints))
	for name := range rm.endpoints {
		names = append(names, name)
	}
	return names
}
