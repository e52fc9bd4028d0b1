package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"taskpad/internal/models"
)

// Exporter — интерфейс (удобно мокать в тестах)
type Exporter interface {
	ExportTasks(w io.Writer, owner string, tasks []models.Task) error
}

type TaskExporter struct{}

func NewTaskExporter() *TaskExporter {
	return &TaskExporter{}
}

// ExportTasks пишет список задач одним PDF в w.
func (e *TaskExporter) ExportTasks(w io.Writer, owner string, tasks []models.Task) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Task list", false)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(0, 10, "Task list")
	doc.Ln(8)
	doc.SetFont("Helvetica", "", 10)
	doc.Cell(0, 8, fmt.Sprintf("%s — exported %s", owner, time.Now().Format("2006-01-02 15:04")))
	doc.Ln(12)

	// шапка таблицы
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(90, 8, "Title", "1", 0, "L", false, 0, "")
	doc.CellFormat(30, 8, "Status", "1", 0, "L", false, 0, "")
	doc.CellFormat(25, 8, "Priority", "1", 0, "L", false, 0, "")
	doc.CellFormat(35, 8, "Due date", "1", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	for _, t := range tasks {
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.Format("2006-01-02")
		}
		title := t.Title
		if len(title) > 48 {
			title = title[:45] + "..."
		}
		doc.CellFormat(90, 8, title, "1", 0, "L", false, 0, "")
		doc.CellFormat(30, 8, string(t.Status), "1", 0, "L", false, 0, "")
		doc.CellFormat(25, 8, string(t.Priority), "1", 0, "L", false, 0, "")
		doc.CellFormat(35, 8, due, "1", 1, "L", false, 0, "")
	}
	if len(tasks) == 0 {
		doc.CellFormat(180, 8, "No tasks yet", "1", 1, "C", false, 0, "")
	}

	return doc.Output(w)
}
