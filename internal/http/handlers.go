package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"

	"contabilidad/internal/core"
	"contabilidad/internal/filestore"
)

type incomeRequest struct {
	Fecha       string       `json:"fecha"`
	Monto       *core.Amount `json:"monto"`
	Descripcion string       `json:"descripcion"`
}

type summaryResponse struct {
	TotalIngresos core.Amount         `json:"total_ingresos"`
	TotalGastos   core.Amount         `json:"total_gastos"`
	Balance       core.Amount         `json:"balance"`
	Gastos        []core.ExpenseEntry `json:"gastos"`
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	var req incomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Formato de solicitud no válido")
		return
	}
	if req.Monto == nil {
		writeError(w, http.StatusBadRequest, "Falta el campo monto")
		return
	}

	entry := core.IncomeEntry{
		Date:        req.Fecha,
		Amount:      *req.Monto,
		Description: req.Descripcion,
	}
	if err := entry.Validate(); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	if _, err := s.records.CreateIncome(r.Context(), entry); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeMessage(w, "Ingreso registrado")
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Formato de solicitud no válido")
		return
	}

	amount, err := core.ParseAmount(r.FormValue("monto"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	entry := core.ExpenseEntry{
		Date:        r.FormValue("fecha"),
		Amount:      amount,
		Description: r.FormValue("descripcion"),
	}
	if err := entry.Validate(); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	// The receipt is mandatory for expenses, and it must hit the disk
	// before the row referencing it is inserted.
	file, header, err := r.FormFile("archivo")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Archivo no válido")
		return
	}
	defer file.Close()

	storedName, err := s.files.Save(header.Filename, file)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	entry.Attachment = &storedName

	if _, err := s.records.CreateExpense(r.Context(), entry); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeMessage(w, "Gasto registrado")
}

func (s *Server) handleCreateMaintenance(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Formato de solicitud no válido")
		return
	}

	odometer, err := core.ParseOdometer(r.FormValue("kilometraje"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	nextOdometer, err := core.ParseOptionalOdometer(r.FormValue("proximo_kilometraje"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	cost, err := core.ParseAmount(r.FormValue("costo"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	event := core.MaintenanceEvent{
		Type:         r.FormValue("tipo"),
		Date:         r.FormValue("fecha"),
		Odometer:     odometer,
		Description:  r.FormValue("descripcion"),
		Component:    r.FormValue("componente"),
		NextOdometer: nextOdometer,
		NextDate:     core.OptionalString(r.FormValue("proxima_fecha")),
		Cost:         cost,
	}
	if err := event.Validate(); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	// The attached document is optional here, unlike expense receipts.
	file, header, err := r.FormFile("archivo")
	switch {
	case err == nil:
		defer file.Close()
		storedName, err := s.files.Save(header.Filename, file)
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		event.Attachment = &storedName
	case errors.Is(err, http.ErrMissingFile):
		// no document attached
	default:
		writeError(w, http.StatusBadRequest, "Archivo no válido")
		return
	}

	if _, err := s.records.CreateMaintenance(r.Context(), event); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeMessage(w, "Mantenimiento registrado")
}

func (s *Server) handleListMaintenance(w http.ResponseWriter, r *http.Request) {
	events, err := s.records.ListMaintenance(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.records.Summary(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		TotalIngresos: sum.TotalIncome,
		TotalGastos:   sum.TotalExpense,
		Balance:       sum.Balance,
		Gastos:        sum.Expenses,
	})
}

func (s *Server) handleGetUpload(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("filename")

	rc, err := s.files.Open(name)
	if err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Archivo no encontrado")
			return
		}
		s.writeDomainError(w, r, err)
		return
	}
	defer rc.Close()

	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		w.Header().Set("Content-Type", ct)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	if _, err := io.Copy(w, rc); err != nil {
		slog.ErrorContext(r.Context(), "Failed streaming upload", "archivo", name, "error", err)
	}
}
