package httpapi

import (
	"fmt"
	"io"
	"strings"
	"time"

	"recruit-data/internal/domain"

	"github.com/xuri/excelize/v2"
)

// DailyStatImportHeader 日常统计批量导入模板表头
var DailyStatImportHeader = []string{
	"身份证号",
	"日期",
	"情绪",
	"身体状况",
	"精神状态",
	"训练情况",
	"管理情况",
}

// ParseDailyStatWorkbook 解析上传的日常统计 xlsx
// 第一行为表头（跳过），身份证号或日期为空/不合法的行报错并带行号
func ParseDailyStatWorkbook(r io.Reader, maxRows int) ([]domain.DailyStat, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("workbook has no data rows")
	}
	if maxRows > 0 && len(rows)-1 > maxRows {
		return nil, fmt.Errorf("workbook has %d rows, exceeds limit %d", len(rows)-1, maxRows)
	}

	cell := func(row []string, idx int) string {
		if idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	var stats []domain.DailyStat
	for i, row := range rows[1:] {
		rowNum := i + 2

		idCard := cell(row, 0)
		if idCard == "" {
			// 整行为空则跳过（模板尾部常见的空行）
			if strings.TrimSpace(strings.Join(row, "")) == "" {
				continue
			}
			return nil, fmt.Errorf("row %d: 身份证号 is required", rowNum)
		}

		date, err := parseCellDate(cell(row, 1))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		stats = append(stats, domain.DailyStat{
			IDCard:            idCard,
			Date:              date,
			Mood:              cell(row, 2),
			PhysicalCondition: cell(row, 3),
			MentalState:       cell(row, 4),
			Training:          cell(row, 5),
			Management:        cell(row, 6),
		})
	}
	if len(stats) == 0 {
		return nil, fmt.Errorf("workbook has no data rows")
	}
	return stats, nil
}

// parseCellDate 兼容常见的单元格日期写法
func parseCellDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("日期 is required")
	}
	layouts := []string{
		domain.DateLayout,
		"2006/01/02",
		"2006年01月02日",
		"01-02-06", // excelize 对日期单元格的默认短格式
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
