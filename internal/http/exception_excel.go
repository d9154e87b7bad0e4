package httpapi

import (
	"bytes"
	"fmt"

	"recruit-data/internal/domain"

	"github.com/xuri/excelize/v2"
)

// ExceptionExportHeader 异常统计导出表头
var ExceptionExportHeader = []string{
	"身份证号",
	"姓名",
	"性别",
	"接兵地",
	"连",
	"排",
	"班",
	"班长",
	"日期",
	"医学筛查",
	"政治考核",
	"体格检查",
	"日常统计",
	"镇街走访",
	"骨干谈心",
	"是否异常",
	"异常来源",
}

// GenerateExceptionExport 生成异常统计导出 Excel 文件
// rows 为空时只生成表头
func GenerateExceptionExport(rows []domain.ExceptionViewRow) ([]byte, error) {
	f := excelize.NewFile()
	// Note: Don't defer Close() here, because WriteTo needs the file to be open

	sheetName := "异常统计"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	// 删除默认的 Sheet1
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	// 表头样式
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	// 写入表头
	for col, header := range ExceptionExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	// 列宽
	columnWidths := []float64{
		22, // 身份证号
		12, // 姓名
		8,  // 性别
		16, // 接兵地
		8,  // 连
		8,  // 排
		8,  // 班
		12, // 班长
		14, // 日期
		10, // 医学筛查
		10, // 政治考核
		10, // 体格检查
		10, // 日常统计
		10, // 镇街走访
		10, // 骨干谈心
		10, // 是否异常
		30, // 异常来源
	}
	for i := range ExceptionExportHeader {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if i < len(columnWidths) && columnWidths[i] > 0 {
			if err := f.SetColWidth(sheetName, col, col, columnWidths[i]); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}

	// 写入数据行
	for rowIdx, row := range rows {
		values := []any{
			row.IDCard,
			row.Name,
			row.Gender,
			row.RecruitmentPlace,
			row.Company,
			row.Platoon,
			row.Squad,
			row.SquadLeader,
			row.Date.Format(domain.DateLayout),
			flagText(row.MedicalScreening),
			flagText(row.PoliticalAssessment),
			flagText(row.PhysicalExamination),
			flagText(row.DailyStat),
			flagText(row.TownInterview),
			flagText(row.LeaderInterview),
			totalText(row.TotalException),
			row.SourceAttribution,
		}
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	// 冻结表头
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	// Write to bytes buffer
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}

	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}

	return buf.Bytes(), nil
}

func flagText(flagged bool) string {
	if flagged {
		return domain.StatusAbnormal
	}
	return domain.StatusNormal
}

func totalText(flagged bool) string {
	if flagged {
		return "是"
	}
	return "否"
}
