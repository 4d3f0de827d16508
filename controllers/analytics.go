package controllers

import (
	"sort"
	"time"

	"interviewprep/models"
)

// Aggregates computed in memory from a user's interview list. The data
// volume per user is small, so everything is recomputed per request.

type DayActivity struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type PreparationStats struct {
	Min   int     `json:"min_prep"`
	Max   int     `json:"max_prep"`
	Avg   float64 `json:"avg_prep"`
	Total int     `json:"total_interviews"`
}

type PrepLevelSuccess struct {
	Level       int     `json:"preparation_level"`
	Total       int     `json:"total"`
	Selected    int     `json:"selected"`
	Rejected    int     `json:"rejected"`
	SuccessRate float64 `json:"success_rate"`
}

type CompanyCount struct {
	Company string `json:"company"`
	Count   int    `json:"count"`
}

// statusCounts partitions interviews by status. All four statuses are
// always present in the result, zero-defaulted.
func statusCounts(interviews []models.Interview) map[string]int {
	counts := make(map[string]int, len(models.Statuses))
	for _, s := range models.Statuses {
		counts[s] = 0
	}
	for _, iv := range interviews {
		counts[iv.Status]++
	}
	return counts
}

// weeklyActivity counts interviews per day over the trailing 7-day window
// ending at now, inclusive. Days without interviews appear with count 0.
func weeklyActivity(interviews []models.Interview, now time.Time) []DayActivity {
	today := now.Truncate(24 * time.Hour)
	byDay := make(map[string]int)
	for _, iv := range interviews {
		day := iv.InterviewDate.Truncate(24 * time.Hour)
		if !day.Before(today.AddDate(0, 0, -6)) && !day.After(today) {
			byDay[day.Format("2006-01-02")]++
		}
	}

	activity := make([]DayActivity, 0, 7)
	for i := 6; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		activity = append(activity, DayActivity{Date: date, Count: byDay[date]})
	}
	return activity
}

func preparationStats(interviews []models.Interview) PreparationStats {
	stats := PreparationStats{Total: len(interviews)}
	if stats.Total == 0 {
		return stats
	}

	stats.Min = interviews[0].PreparationLevel
	stats.Max = interviews[0].PreparationLevel
	sum := 0
	for _, iv := range interviews {
		if iv.PreparationLevel < stats.Min {
			stats.Min = iv.PreparationLevel
		}
		if iv.PreparationLevel > stats.Max {
			stats.Max = iv.PreparationLevel
		}
		sum += iv.PreparationLevel
	}
	stats.Avg = float64(sum) / float64(stats.Total)
	return stats
}

// successByPreparation computes selected/total*100 for each preparation
// level that has at least one interview. Levels with no interviews are
// omitted entirely rather than reported as zero-total rows.
func successByPreparation(interviews []models.Interview) []PrepLevelSuccess {
	var rows []PrepLevelSuccess
	for level := 1; level <= 5; level++ {
		row := PrepLevelSuccess{Level: level}
		for _, iv := range interviews {
			if iv.PreparationLevel != level {
				continue
			}
			row.Total++
			switch iv.Status {
			case models.StatusSelected:
				row.Selected++
			case models.StatusRejected:
				row.Rejected++
			}
		}
		if row.Total > 0 {
			row.SuccessRate = float64(row.Selected) / float64(row.Total) * 100
			rows = append(rows, row)
		}
	}
	return rows
}

// companyBreakdown returns the most-applied-to companies, count descending.
func companyBreakdown(interviews []models.Interview, limit int) []CompanyCount {
	byCompany := make(map[string]int)
	for _, iv := range interviews {
		byCompany[iv.CompanyName]++
	}

	breakdown := make([]CompanyCount, 0, len(byCompany))
	for company, count := range byCompany {
		breakdown = append(breakdown, CompanyCount{Company: company, Count: count})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Count != breakdown[j].Count {
			return breakdown[i].Count > breakdown[j].Count
		}
		return breakdown[i].Company < breakdown[j].Company
	})

	if len(breakdown) > limit {
		breakdown = breakdown[:limit]
	}
	return breakdown
}

func countCreatedSince(interviews []models.Interview, cutoff time.Time) int {
	count := 0
	for _, iv := range interviews {
		if !iv.CreatedAt.Before(cutoff) {
			count++
		}
	}
	return count
}

// successRate is the percentage of interviews whose status is Selected.
func successRate(interviews []models.Interview) float64 {
	if len(interviews) == 0 {
		return 0
	}
	selected := 0
	for _, iv := range interviews {
		if iv.Status == models.StatusSelected {
			selected++
		}
	}
	return float64(selected) / float64(len(interviews)) * 100
}

func averagePreparation(interviews []models.Interview) float64 {
	if len(interviews) == 0 {
		return 0
	}
	sum := 0
	for _, iv := range interviews {
		sum += iv.PreparationLevel
	}
	return float64(sum) / float64(len(interviews))
}
