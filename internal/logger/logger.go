package logger

import (
	"archive/zip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LoggerService owns the rotating audit log every other service writes
// through. Rotation is size-based; retention zips and removes old files.
type LoggerService struct {
	Config map[string]interface{}

	mu       sync.Mutex
	file     *os.File
	current  string
	stopCh   chan struct{}
	wg       sync.WaitGroup
	maxBytes int64
	keepDays int
	dir      string
}

func NewLoggerService(config map[string]interface{}) *LoggerService {
	maxMB := intSetting(config, "max_file_mb")
	keepDays := intSetting(config, "retention_days")
	dir, _ := config["folder_path"].(string)
	if dir == "" {
		dir = "./logs"
	}
	return &LoggerService{
		Config:   config,
		stopCh:   make(chan struct{}),
		maxBytes: int64(maxMB) * 1024 * 1024,
		keepDays: keepDays,
		dir:      dir,
	}
}

// intSetting reads an int from yaml-loaded config, where numbers may have
// decoded as float64.
func intSetting(config map[string]interface{}, key string) int {
	if n, ok := config[key].(int); ok {
		return n
	}
	if f, ok := config[key].(float64); ok {
		return int(f)
	}
	return 0
}

func (l *LoggerService) Name() string {
	return "Logger"
}

func (l *LoggerService) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return err
	}
	file, err := l.openNext()
	if err != nil {
		return err
	}
	l.file = file
	log.SetOutput(file)
	log.Println("[LoggerService] Started, writing to", l.current)

	l.wg.Add(1)
	go l.backgroundWorker()

	return nil
}

func (l *LoggerService) Stop() error {
	close(l.stopCh)
	l.wg.Wait()
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		log.Println("[LoggerService] Stopping")
		return l.file.Close()
	}
	return nil
}

func (l *LoggerService) openNext() (*os.File, error) {
	l.current = filepath.Join(l.dir, fmt.Sprintf("revtrack_%s.log", time.Now().Format("20060102_150405")))
	return os.OpenFile(l.current, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}

func (l *LoggerService) rotateIfNeeded() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil || l.maxBytes <= 0 {
		return
	}
	info, err := l.file.Stat()
	if err != nil || info.Size() < l.maxBytes {
		return
	}
	l.file.Close()
	file, err := l.openNext()
	if err != nil {
		return
	}
	l.file = file
	log.SetOutput(file)
	log.Println("[LoggerService] Rotated log file to", l.current)
}

func (l *LoggerService) backgroundWorker() {
	defer l.wg.Done()
	rotate := time.NewTicker(10 * time.Second)
	retain := time.NewTicker(24 * time.Hour)
	defer rotate.Stop()
	defer retain.Stop()

	for {
		select {
		case <-l.stopCh:
			return
		case <-rotate.C:
			l.rotateIfNeeded()
		case <-retain.C:
			l.zipAndCleanOldLogs()
		}
	}
}

func (l *LoggerService) zipAndCleanOldLogs() {
	if l.keepDays <= 0 {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -l.keepDays)
	files, err := os.ReadDir(l.dir)
	if err != nil {
		return
	}
	zipFile, err := os.Create(filepath.Join(l.dir, fmt.Sprintf("logs_%s.zip", time.Now().Format("20060102"))))
	if err != nil {
		return
	}
	defer zipFile.Close()
	zipWriter := zip.NewWriter(zipFile)
	defer zipWriter.Close()

	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".log" {
			continue
		}
		fullPath := filepath.Join(l.dir, f.Name())
		info, err := os.Stat(fullPath)
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		w, err := zipWriter.Create(f.Name())
		if err != nil {
			continue
		}
		src, err := os.Open(fullPath)
		if err != nil {
			continue
		}
		io.Copy(w, src)
		src.Close()
		os.Remove(fullPath)
	}
}

// LogAudit records a user-visible action: logins, uploads, approvals,
// status changes. Import handlers call it once per file processed.
func (l *LoggerService) LogAudit(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	log.Printf("[AUDIT] %s", msg)
}

var GlobalLogger *LoggerService

func SetGlobalLogger(l *LoggerService) {
	GlobalLogger = l
}
