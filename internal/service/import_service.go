package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"gympoint/internal/model"
	"gympoint/internal/validation"

	"github.com/sirupsen/logrus"
)

const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusError      = "error"

	importBatchSize = 500
)

var importColumns = []string{"name", "email", "age", "weight", "height"}

type ProgressInfo struct {
	FileName     string    `json:"file_name"`
	TotalRecords int       `json:"total_records"`
	Processed    int       `json:"processed"`
	Skipped      int       `json:"skipped"`
	Status       string    `json:"status"`
	Error        string    `json:"error,omitempty"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time,omitempty"`
}

type StudentBatchWriter interface {
	CreateBatch(ctx context.Context, students []model.Student) (int64, error)
}

// ImportService loads students from CSV files. Files run concurrently and
// every file fans its rows out to workers bounded by a shared semaphore.
type ImportService struct {
	students StudentBatchWriter
	log      logrus.FieldLogger

	progressLock sync.RWMutex
	progress     map[string]*ProgressInfo

	listenerLock sync.RWMutex
	listeners    map[chan *ProgressInfo]bool

	workerSemaphore chan struct{}
}

func NewImportService(students StudentBatchWriter, log logrus.FieldLogger) *ImportService {
	return &ImportService{
		students:        students,
		log:             log,
		progress:        make(map[string]*ProgressInfo),
		listeners:       make(map[chan *ProgressInfo]bool),
		workerSemaphore: make(chan struct{}, runtime.NumCPU()*2),
	}
}

func (s *ImportService) RegisterProgressListener(ch chan *ProgressInfo) {
	s.listenerLock.Lock()
	defer s.listenerLock.Unlock()
	s.listeners[ch] = true
}

func (s *ImportService) UnregisterProgressListener(ch chan *ProgressInfo) {
	s.listenerLock.Lock()
	defer s.listenerLock.Unlock()
	delete(s.listeners, ch)
}

// broadcast hands a copy of p to every listener that is ready for it.
func (s *ImportService) broadcast(p *ProgressInfo) {
	s.listenerLock.RLock()
	defer s.listenerLock.RUnlock()

	for listener := range s.listeners {
		snapshot := *p
		select {
		case listener <- &snapshot:
		default:
		}
	}
}

func (s *ImportService) FileProgress(fileName string) *ProgressInfo {
	s.progressLock.RLock()
	defer s.progressLock.RUnlock()

	if p, ok := s.progress[fileName]; ok {
		snapshot := *p
		return &snapshot
	}
	return nil
}

func (s *ImportService) AllProgress() []*ProgressInfo {
	s.progressLock.RLock()
	defer s.progressLock.RUnlock()

	result := make([]*ProgressInfo, 0, len(s.progress))
	for _, p := range s.progress {
		snapshot := *p
		result = append(result, &snapshot)
	}
	return result
}

// mutate applies fn to the progress of fileName under the lock and
// broadcasts the result.
func (s *ImportService) mutate(fileName string, fn func(p *ProgressInfo)) {
	s.progressLock.Lock()
	defer s.progressLock.Unlock()

	if p, ok := s.progress[fileName]; ok {
		fn(p)
		s.broadcast(p)
	}
}

func (s *ImportService) addProgress(fileName string, processed, skipped int) {
	s.mutate(fileName, func(p *ProgressInfo) {
		p.Processed += processed
		p.Skipped += skipped
		if p.Processed > p.TotalRecords {
			p.Processed = p.TotalRecords
		}
	})
}

func (s *ImportService) failProgress(fileName string, err error) {
	s.mutate(fileName, func(p *ProgressInfo) {
		p.Status = StatusError
		p.Error = err.Error()
		p.EndTime = time.Now()
	})
}

// ProcessCSV imports every valid row of the file at filePath. Rows that fail
// the student create rules, repeat an email seen earlier in the file, or
// clash with a stored email are counted as skipped.
func (s *ImportService) ProcessCSV(ctx context.Context, filePath string) error {
	fileName := filepath.Base(filePath)
	startTime := time.Now()
	log := s.log.WithField("file", fileName)

	s.progressLock.Lock()
	s.progress[fileName] = &ProgressInfo{FileName: fileName, Status: StatusProcessing, StartTime: startTime}
	s.progressLock.Unlock()

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		s.failProgress(fileName, fmt.Errorf("stat file: %w", err))
		return err
	}

	total, err := countRecords(filePath)
	if err != nil {
		s.failProgress(fileName, fmt.Errorf("count records: %w", err))
		return err
	}

	file, err := os.Open(filePath)
	if err != nil {
		s.failProgress(fileName, fmt.Errorf("open file: %w", err))
		return err
	}
	defer file.Close()

	reader := newCSVReader(file)
	header, err := reader.Read()
	if err != nil {
		s.failProgress(fileName, fmt.Errorf("read header: %w", err))
		return err
	}
	columns, err := indexColumns(header)
	if err != nil {
		s.failProgress(fileName, err)
		return err
	}

	s.mutate(fileName, func(p *ProgressInfo) { p.TotalRecords = total })

	numWorkers := calculateWorkers(fileInfo.Size())
	log.WithFields(logrus.Fields{"workers": numWorkers, "bytes": fileInfo.Size(), "records": total}).Info("import started")

	rows := make(chan []string, numWorkers*100)
	var wg sync.WaitGroup
	var seen sync.Map
	errCh := make(chan error, numWorkers)

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.worker(ctx, fileName, columns, rows, &seen); err != nil {
				errCh <- err
				for range rows {
				}
			}
		}()
	}

	go func() {
		defer close(rows)
		for {
			record, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				log.WithError(err).Warn("skipping unreadable record")
				s.addProgress(fileName, 1, 1)
				continue
			}
			select {
			case rows <- record:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	close(errCh)

	if err := <-errCh; err != nil {
		s.failProgress(fileName, err)
		log.WithError(err).Error("import failed")
		return err
	}
	if err := ctx.Err(); err != nil {
		s.failProgress(fileName, err)
		return err
	}

	s.mutate(fileName, func(p *ProgressInfo) {
		p.Status = StatusCompleted
		p.Processed = p.TotalRecords
		p.EndTime = time.Now()
	})

	log.WithField("elapsed", time.Since(startTime)).Info("import completed")
	return nil
}

func (s *ImportService) worker(ctx context.Context, fileName string, columns map[string]int, rows <-chan []string, seen *sync.Map) error {
	s.workerSemaphore <- struct{}{}
	defer func() { <-s.workerSemaphore }()

	batch := make([]model.Student, 0, importBatchSize)
	processed, skipped := 0, 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		written, err := s.students.CreateBatch(ctx, batch)
		if err != nil {
			return err
		}
		skipped += len(batch) - int(written)
		processed += len(batch)
		s.addProgress(fileName, processed, skipped)
		processed, skipped = 0, 0
		batch = batch[:0]
		return nil
	}

	for record := range rows {
		student, ok := parseStudent(record, columns)
		if !ok {
			processed++
			skipped++
			continue
		}
		if _, dup := seen.LoadOrStore(strings.ToLower(student.Email), true); dup {
			processed++
			skipped++
			continue
		}

		batch = append(batch, student)
		if len(batch) >= importBatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}

	if err := flush(); err != nil {
		return err
	}
	if processed > 0 {
		s.addProgress(fileName, processed, skipped)
	}
	return nil
}

// parseStudent turns one CSV row into a student that passes the create
// rules.
func parseStudent(record []string, columns map[string]int) (model.Student, bool) {
	field := func(name string) string {
		i := columns[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	number := func(name string) *float64 {
		v, err := strconv.ParseFloat(field(name), 64)
		if err != nil {
			return nil
		}
		return &v
	}

	in := validation.CreateStudent{
		Name:   field("name"),
		Email:  field("email"),
		Age:    number("age"),
		Weight: number("weight"),
		Height: number("height"),
	}
	if !validation.Validate(in).OK() {
		return model.Student{}, false
	}

	return model.Student{
		Name:   in.Name,
		Email:  in.Email,
		Age:    int(*in.Age),
		Weight: *in.Weight,
		Height: *in.Height,
	}, true
}

func indexColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, c := range importColumns {
		if _, ok := columns[c]; !ok {
			return nil, fmt.Errorf("missing column %q", c)
		}
	}
	return columns, nil
}

func newCSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader
}

// calculateWorkers sizes the pool from the file size, capped by the CPUs.
func calculateWorkers(fileSize int64) int {
	cpus := runtime.NumCPU()
	switch {
	case fileSize < 1_000_000:
		return min(2, cpus)
	case fileSize < 10_000_000:
		return min(4, cpus)
	case fileSize < 100_000_000:
		return min(8, cpus)
	case fileSize < 1_000_000_000:
		return min(16, cpus)
	}
	return cpus
}

func countRecords(filePath string) (int, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	reader := newCSVReader(file)
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, err
	}

	count := 0
	for {
		_, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
