package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"skilltwin/internal/metrics"
	"skilltwin/internal/models"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportService renders admin datasets as xlsx workbooks.
type ExportService interface {
	ExportLeads(ctx context.Context, source models.LeadSource) ([]byte, error)
	ExportEnrollments(ctx context.Context) ([]byte, error)
}

type exportService struct {
	leads       LeadService
	enrollments EnrollmentService
}

func NewExportService(leads LeadService, enrollments EnrollmentService) ExportService {
	return &exportService{leads: leads, enrollments: enrollments}
}

func (s *exportService) ExportLeads(ctx context.Context, source models.LeadSource) ([]byte, error) {
	leads, err := s.leads.ListLeads(ctx, source)
	if err != nil {
		return nil, err
	}

	header := []interface{}{"ID", "Source", "Name", "Email", "Phone", "Technology", "Help Type", "Service", "Pricing", "Subject", "Message", "Submitted"}
	rows := make([][]interface{}, 0, len(leads))
	for _, l := range leads {
		rows = append(rows, []interface{}{
			l.ID.Hex(), string(l.Source), l.Name, l.Email, l.Phone, l.Technology, l.HelpType,
			l.ServiceTitle, l.ServicePricing, l.Subject, l.Message, l.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return s.workbook("leads", "Leads", header, rows)
}

func (s *exportService) ExportEnrollments(ctx context.Context) ([]byte, error) {
	enrollments, err := s.enrollments.ListEnrollments(ctx)
	if err != nil {
		return nil, err
	}

	header := []interface{}{"ID", "Name", "Email", "Phone", "Experience", "Schedule", "Program", "Price", "Message", "Submitted"}
	rows := make([][]interface{}, 0, len(enrollments))
	for _, e := range enrollments {
		rows = append(rows, []interface{}{
			e.ID.Hex(), e.Name, e.Email, e.Phone, e.Experience, e.Schedule,
			e.ProgramTitle, e.ProgramPrice, e.Message, e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return s.workbook("enrollments", "Enrollments", header, rows)
}

func (s *exportService) workbook(dataset, sheet string, header []interface{}, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close workbook")
		}
	}()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	metrics.ExportsGeneratedTotal.WithLabelValues(dataset).Inc()
	return buf.Bytes(), nil
}
