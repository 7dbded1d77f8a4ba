package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"course-catalog/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置下载响应头后写入 Response。
// Excel 格式：单个 Sheet，每门课程一行，按课程 ID 升序。
type ExportService interface {
	ExportCatalog(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

const catalogSheet = "Courses"

var catalogHeaders = []string{"ID", "Name", "Professor", "Days", "Time", "Enrolled", "Capacity", "Status"}

// ExportCatalog 导出课程目录为 Excel
// 返回值：buf（Excel 内容）, filename（建议文件名）, error
func (s *exportService) ExportCatalog(ctx context.Context) (*bytes.Buffer, string, error) {
	entries, err := s.repo.Course.List(ctx, false)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	// 默认 Sheet1 直接重命名
	if err := f.SetSheetName("Sheet1", catalogSheet); err != nil {
		return nil, "", s.generateFailed(err)
	}

	f.SetColWidth(catalogSheet, "A", "A", 6)
	f.SetColWidth(catalogSheet, "B", "C", 32)
	f.SetColWidth(catalogSheet, "D", "E", 14)
	f.SetColWidth(catalogSheet, "F", "H", 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	fullStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "#C00000"},
	})

	for i, h := range catalogHeaders {
		f.SetCellValue(catalogSheet, cell(colName(i), 1), h)
	}
	f.SetCellStyle(catalogSheet, "A1", cell(colName(len(catalogHeaders)-1), 1), headerStyle)

	row := 2
	for _, e := range entries {
		c := e.Course
		sh, sm := c.Time.StartClock()
		eh, em := c.Time.EndClock()

		status := "Open"
		if !c.Available() {
			status = "Full"
		}

		values := []interface{}{
			e.ID,
			c.Name,
			c.Professor,
			c.Time.Days,
			fmt.Sprintf("%02d:%02d-%02d:%02d", sh, sm, eh, em),
			c.CurrentEnr,
			c.MaxEnr,
			status,
		}
		for i, v := range values {
			f.SetCellValue(catalogSheet, cell(colName(i), row), v)
		}
		if !c.Available() {
			f.SetCellStyle(catalogSheet, cell("H", row), cell("H", row), fullStyle)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", s.generateFailed(err)
	}

	filename := fmt.Sprintf("courses_%s.xlsx", s.now().Format("20060102"))
	return buf, filename, nil
}

func (s *exportService) generateFailed(err error) error {
	s.logger.Error("写入 Excel 失败", zap.Error(err))
	return ErrExportGenerateFail
}

// ── 辅助函数 ──

// colName 0 起始的列序号转列名（0 → "A"）
func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
