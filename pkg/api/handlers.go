package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/segmentio/ksuid"

	"github.com/tmarsden/binq/pkg/archive"
	"github.com/tmarsden/binq/pkg/frame"
	"github.com/tmarsden/binq/pkg/serq"
)

// UploadResponse describes a stored snapshot revision
type UploadResponse struct {
	Name     string `json:"name"`
	Revision string `json:"revision"`
	Size     int    `json:"size"`
}

// VerifyResponse describes the outcome of a snapshot verification
type VerifyResponse struct {
	Name         string   `json:"name"`
	Revision     string   `json:"revision,omitempty"`
	Valid        bool     `json:"valid"`
	Checksum     uint32   `json:"checksum"`
	Records      []uint64 `json:"records,omitempty"`
	HeaderBytes  int      `json:"header_bytes"`
	PayloadBytes int      `json:"payload_bytes"`
}

// RevisionInfo describes one revision of a named snapshot
type RevisionInfo struct {
	ID   string `json:"id"`
	Size int    `json:"size"`
}

// ArchiveStats summarizes the whole archive
type ArchiveStats struct {
	Snapshots  int   `json:"snapshots"`
	Revisions  int   `json:"revisions"`
	TotalBytes int64 `json:"total_bytes"`
}

// Server holds the API server state
type Server struct {
	archive SnapshotArchive
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server
func NewServer(archive SnapshotArchive, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		archive: archive,
		config:  config,
		metrics: metrics,
	}
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.metrics != nil {
		s.metrics.RecordHealthCheck(true)
	}
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleUpload stores the request body as a new revision of the named
// snapshot. The body must be a framed buffer; the archive rejects anything
// whose checksum does not match its contents.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := chi.URLParam(r, "name")
	if name == "" {
		s.recordOp("put", false, start)
		sendError(w, "Snapshot name is required", http.StatusBadRequest)
		return
	}

	body := r.Body
	if s.config.MaxSnapshotSize > 0 {
		body = http.MaxBytesReader(w, r.Body, s.config.MaxSnapshotSize)
	}
	framed, err := io.ReadAll(body)
	if err != nil {
		s.recordOp("put", false, start)
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			sendError(w, fmt.Sprintf("Snapshot exceeds the %d byte limit", maxErr.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		sendError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	id, err := s.archive.Put(name, framed)
	if err != nil {
		s.recordOp("put", false, start)
		switch {
		case errors.Is(err, archive.ErrCorrupt):
			sendError(w, "Snapshot checksum mismatch", http.StatusUnprocessableEntity)
		case errors.Is(err, archive.ErrInvalidName):
			sendError(w, "Invalid snapshot name", http.StatusBadRequest)
		default:
			sendError(w, fmt.Sprintf("Failed to store snapshot: %v", err), http.StatusInternalServerError)
		}
		return
	}

	s.recordOp("put", true, start)
	if s.metrics != nil {
		s.metrics.RecordSnapshotSize(len(framed))
	}
	sendSuccess(w, UploadResponse{Name: name, Revision: id.String(), Size: len(framed)})
}

// handleFetch returns the raw framed bytes of a snapshot. By default the
// latest revision is served; ?rev=<id> selects a specific one. The revision
// served is echoed in the X-Binq-Revision header.
func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := chi.URLParam(r, "name")

	framed, revID, err := s.fetchRevision(name, r.URL.Query().Get("rev"))
	if err != nil {
		s.recordOp("get", false, start)
		s.sendArchiveError(w, err)
		return
	}

	s.recordOp("get", true, start)
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("X-Binq-Revision", revID)
	if _, err := w.Write(framed); err != nil {
		sendError(w, "Failed to write response", http.StatusInternalServerError)
	}
}

// handleVerify re-checks a stored snapshot against its embedded checksum and
// reports the header breakdown of the decoded buffer.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := chi.URLParam(r, "name")

	framed, revID, err := s.fetchRevision(name, r.URL.Query().Get("rev"))
	if err != nil {
		s.recordOp("verify", false, start)
		s.sendArchiveError(w, err)
		return
	}

	resp := VerifyResponse{Name: name, Revision: revID}

	q := serq.New()
	if err := q.Read(bytes.NewReader(framed)); err == nil {
		stats := q.Stats()
		resp.Valid = q.Validate()
		resp.Checksum = stats.Checksum
		resp.Records = stats.Records
		resp.HeaderBytes = stats.HeaderBytes
		resp.PayloadBytes = stats.PayloadBytes
	} else if body, checksum, ferr := frame.Decode(framed); ferr == nil {
		// Frame parsed but the header ledger did not; still report whether
		// the bytes themselves survived intact.
		resp.Valid = frame.Checksum(body) == checksum
		resp.Checksum = checksum
	}

	s.recordOp("verify", true, start)
	if s.metrics != nil {
		s.metrics.RecordVerification(resp.Valid)
	}
	sendSuccess(w, resp)
}

// handleRevisions lists all stored revisions of a snapshot, oldest first.
func (s *Server) handleRevisions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := chi.URLParam(r, "name")

	revs, err := s.archive.Revisions(name)
	if err != nil {
		s.recordOp("revisions", false, start)
		s.sendArchiveError(w, err)
		return
	}

	infos := make([]RevisionInfo, 0, len(revs))
	for _, rev := range revs {
		infos = append(infos, RevisionInfo{ID: rev.ID.String(), Size: rev.Size})
	}

	s.recordOp("revisions", true, start)
	sendSuccess(w, map[string]interface{}{"name": name, "revisions": infos})
}

// handleList lists the names of all stored snapshots.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	names, err := s.archive.Names()
	if err != nil {
		s.recordOp("list", false, start)
		sendError(w, fmt.Sprintf("Failed to list snapshots: %v", err), http.StatusInternalServerError)
		return
	}

	s.recordOp("list", true, start)
	if s.metrics != nil {
		s.metrics.UpdateSnapshotCount(len(names))
	}
	sendSuccess(w, map[string]interface{}{"snapshots": names})
}

// handleDelete removes a snapshot and all of its revisions.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := chi.URLParam(r, "name")

	if err := s.archive.Delete(name); err != nil {
		s.recordOp("delete", false, start)
		s.sendArchiveError(w, err)
		return
	}

	s.recordOp("delete", true, start)
	sendSuccess(w, map[string]string{"message": "Snapshot deleted successfully"})
}

// handleStats reports archive-wide totals.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	names, err := s.archive.Names()
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to gather stats: %v", err), http.StatusInternalServerError)
		return
	}

	stats := ArchiveStats{Snapshots: len(names)}
	for _, name := range names {
		revs, err := s.archive.Revisions(name)
		if err != nil {
			sendError(w, fmt.Sprintf("Failed to gather stats: %v", err), http.StatusInternalServerError)
			return
		}
		stats.Revisions += len(revs)
		for _, rev := range revs {
			stats.TotalBytes += int64(rev.Size)
		}
	}

	if s.metrics != nil {
		s.metrics.UpdateSnapshotCount(stats.Snapshots)
	}
	sendSuccess(w, stats)
}

// fetchRevision resolves the requested revision of a snapshot. An empty rev
// selects the latest.
func (s *Server) fetchRevision(name, rev string) ([]byte, string, error) {
	if rev == "" {
		framed, latest, err := s.archive.Latest(name)
		if err != nil {
			return nil, "", err
		}
		return framed, latest.ID.String(), nil
	}

	id, err := ksuid.Parse(rev)
	if err != nil {
		return nil, "", errBadRevision
	}
	framed, err := s.archive.Get(name, id)
	if err != nil {
		return nil, "", err
	}
	return framed, id.String(), nil
}

var errBadRevision = errors.New("malformed revision id")

func (s *Server) sendArchiveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, archive.ErrNotFound):
		sendError(w, "Snapshot not found", http.StatusNotFound)
	case errors.Is(err, archive.ErrInvalidName):
		sendError(w, "Invalid snapshot name", http.StatusBadRequest)
	case errors.Is(err, errBadRevision):
		sendError(w, "Malformed revision id", http.StatusBadRequest)
	default:
		sendError(w, fmt.Sprintf("Archive error: %v", err), http.StatusInternalServerError)
	}
}

func (s *Server) recordOp(operation string, success bool, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordArchiveOperation(operation, success, time.Since(start))
	}
}
