package service

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"pdam-be-svc/internal/repository"
	"pdam-be-svc/pkg/logger"
)

// ExportService defines the interface for report export operations
type ExportService interface {
	ExportTagihanToExcel(bulan *string, tahun *int, status *string) ([]byte, string, error)
}

// exportService implements ExportService
type exportService struct {
	tagihanRepo repository.TagihanRepository
	logger      *logger.Logger
}

// NewExportService creates a new instance of ExportService
func NewExportService(tagihanRepo repository.TagihanRepository, logger *logger.Logger) ExportService {
	return &exportService{
		tagihanRepo: tagihanRepo,
		logger:      logger,
	}
}

// ExportTagihanToExcel writes the bill ledger to an Excel workbook and returns
// the file bytes with a timestamped filename
func (s *exportService) ExportTagihanToExcel(bulan *string, tahun *int, status *string) ([]byte, string, error) {
	tagihans, err := s.tagihanRepo.GetForExport(bulan, tahun, status)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get tagihan data: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.WithError(err).Error("Failed to close Excel file")
		}
	}()

	sheetName := "Tagihan"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"No", "Pelanggan", "Bulan", "Tahun", "Meter Awal", "Meter Akhir", "Pemakaian (m3)", "Total Bayar", "Status"}

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#D3D3D3"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err == nil {
		f.SetCellStyle(sheetName, "A1", "I1", headerStyle)
	}

	for i, t := range tagihans {
		row := i + 2

		name := ""
		if t.User != nil {
			name = t.User.Name
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), name)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), t.Bulan)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), t.Tahun)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), t.MeterAwal)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), t.MeterAkhir)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), t.Volume())
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), t.TotalBayar)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), t.StatusBayar)
	}

	for i := 1; i <= len(headers); i++ {
		col, _ := excelize.ColumnNumberToName(i)
		f.SetColWidth(sheetName, col, col, 15)
	}

	if f.GetSheetName(0) == "Sheet1" && sheetName != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("tagihan_export_%s.xlsx", timestamp)

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"rows":     len(tagihans),
		"filename": filename,
	}).Info("Tagihan exported to Excel")

	return buffer.Bytes(), filename, nil
}
