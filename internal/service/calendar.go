package service

import (
	"time"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/dto"
	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
)

const dayKeyLayout = "2006-01-02"

// BuildWeeks buckets per-day rollups into Monday-start weeks covering the
// inclusive [from, to] window. Weeks are padded to full seven-day runs so
// every day lands in exactly one bucket; padding days outside the window
// carry in_month=false.
func BuildWeeks(from, to time.Time, rows []models.DailyHoursRow, leaveDays []time.Time) []dto.CalendarWeek {
	from = truncateDay(from)
	to = truncateDay(to)
	if to.Before(from) {
		return nil
	}

	byDay := indexDaily(rows)
	onLeave := indexLeave(leaveDays)

	start := weekStartMonday(from)
	end := weekStartMonday(to).AddDate(0, 0, 7)

	var weeks []dto.CalendarWeek
	for ws := start; ws.Before(end); ws = ws.AddDate(0, 0, 7) {
		week := dto.CalendarWeek{WeekStart: ws, Days: make([]dto.CalendarDay, 0, 7)}
		for i := 0; i < 7; i++ {
			day := ws.AddDate(0, 0, i)
			cell := buildDay(day, byDay, onLeave)
			cell.InMonth = !day.Before(from) && !day.After(to)
			if cell.InMonth {
				week.WeekHours += cell.TotalHours
			}
			week.Days = append(week.Days, cell)
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// BuildMonthGrid renders the fixed 42-cell month view: six rows of seven
// days starting on the Sunday on or before the first of the month.
func BuildMonthGrid(year int, month time.Month, rows []models.DailyHoursRow, leaveDays []time.Time) dto.MonthGrid {
	byDay := indexDaily(rows)
	onLeave := indexLeave(leaveDays)

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	grid := dto.MonthGrid{Year: year, Month: int(month), Cells: make([]dto.CalendarDay, 0, 42)}
	for i := 0; i < 42; i++ {
		day := start.AddDate(0, 0, i)
		cell := buildDay(day, byDay, onLeave)
		cell.InMonth = day.Month() == month && day.Year() == year
		grid.Cells = append(grid.Cells, cell)
	}
	return grid
}

func buildDay(day time.Time, byDay map[string]models.DailyHoursRow, onLeave map[string]bool) dto.CalendarDay {
	key := day.Format(dayKeyLayout)
	cell := dto.CalendarDay{Date: day, OnLeave: onLeave[key]}
	if row, ok := byDay[key]; ok {
		cell.TotalHours = row.TotalHours
		cell.ApprovedHours = row.ApprovedHours
		cell.EntryCount = row.EntryCount
	}
	return cell
}

func indexDaily(rows []models.DailyHoursRow) map[string]models.DailyHoursRow {
	byDay := make(map[string]models.DailyHoursRow, len(rows))
	for _, row := range rows {
		byDay[row.Day.Format(dayKeyLayout)] = row
	}
	return byDay
}

func indexLeave(days []time.Time) map[string]bool {
	onLeave := make(map[string]bool, len(days))
	for _, day := range days {
		onLeave[day.Format(dayKeyLayout)] = true
	}
	return onLeave
}

// weekStartMonday returns the Monday on or before the given day.
func weekStartMonday(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return truncateDay(t).AddDate(0, 0, -offset)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
