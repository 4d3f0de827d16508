package controllers

import (
	"fmt"
	"sort"
	"strings"

	"interviewprep/models"
)

// Threshold constants driving the canned recommendations.
const (
	industryAvgSuccessRate = 15.0
	weakTopicThreshold     = 20.0
	lowPreparationLevel    = 3.0
)

type PerformanceSummary struct {
	Total                   int     `json:"total"`
	Selected                int     `json:"selected"`
	Rejected                int     `json:"rejected"`
	Interviewed             int     `json:"interviewed"`
	SuccessRate             float64 `json:"success_rate"`
	InterviewConversionRate float64 `json:"interview_conversion_rate"`
	AvgPreparation          float64 `json:"avg_preparation"`
	AvgPreparationSelected  float64 `json:"avg_preparation_selected"`
	Rating                  string  `json:"rating"`
	Analysis                string  `json:"analysis"`
}

type TopicStat struct {
	Topic          string  `json:"topic"`
	SuccessRate    float64 `json:"success_rate"`
	AvgPreparation float64 `json:"avg_preparation"`
	Attempts       int     `json:"attempts"`
}

type Tip struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
}

type Prediction struct {
	PredictedSuccessRate float64 `json:"predicted_success_rate"`
	RecentSuccessRate    float64 `json:"recent_success_rate"`
	AvgRecentPreparation float64 `json:"avg_recent_preparation"`
}

type Trend struct {
	Direction        string  `json:"direction"` // improving, declining or stable
	EarlySuccessRate float64 `json:"early_success_rate"`
	LateSuccessRate  float64 `json:"late_success_rate"`
}

func performanceSummary(interviews []models.Interview) PerformanceSummary {
	counts := statusCounts(interviews)
	summary := PerformanceSummary{
		Total:          len(interviews),
		Selected:       counts[models.StatusSelected],
		Rejected:       counts[models.StatusRejected],
		Interviewed:    counts[models.StatusInterviewed],
		SuccessRate:    successRate(interviews),
		AvgPreparation: averagePreparation(interviews),
	}
	if summary.Total > 0 {
		summary.InterviewConversionRate = float64(summary.Interviewed) / float64(summary.Total) * 100
	}

	var selected []models.Interview
	for _, iv := range interviews {
		if iv.Status == models.StatusSelected {
			selected = append(selected, iv)
		}
	}
	summary.AvgPreparationSelected = averagePreparation(selected)

	switch {
	case summary.SuccessRate > 20:
		summary.Rating = "Excellent"
	case summary.SuccessRate > 10:
		summary.Rating = "Good"
	default:
		summary.Rating = "Needs Improvement"
	}

	summary.Analysis = performanceAnalysis(summary)
	return summary
}

func performanceAnalysis(s PerformanceSummary) string {
	comparison := "below"
	if s.SuccessRate > industryAvgSuccessRate {
		comparison = "above"
	} else if s.SuccessRate == industryAvgSuccessRate {
		comparison = "at"
	}

	prepRemark := "could improve your preparation"
	if s.AvgPreparation >= 3.5 {
		prepRemark = "generally prepare well"
	}

	var closing string
	switch {
	case s.SuccessRate > 20:
		closing = "You are doing great! Keep maintaining your preparation standards."
	case s.SuccessRate < 10:
		closing = "Focus on increasing your preparation time and practice to improve success rates."
	default:
		closing = "Good progress! Consider targeting higher preparation levels for better results."
	}

	return fmt.Sprintf(
		"Based on your %d interview(s): you have a %.1f%% success rate, which is %s the industry average of %.0f%%. "+
			"Your average preparation level is %.2f/5.0, suggesting you %s. %s",
		s.Total, s.SuccessRate, comparison, industryAvgSuccessRate, s.AvgPreparation, prepRemark, closing)
}

// topicStats treats every trimmed comma-separated token in the technical
// topics field as an independent topic attempt and computes its success
// rate. Sorted ascending so the weakest topics surface first.
func topicStats(interviews []models.Interview) []TopicStat {
	type bucket struct {
		total    int
		selected int
		prepSum  int
	}
	buckets := make(map[string]*bucket)

	for _, iv := range interviews {
		if iv.TechnicalTopics == "" {
			continue
		}
		for _, raw := range strings.Split(iv.TechnicalTopics, ",") {
			topic := strings.TrimSpace(raw)
			if topic == "" {
				continue
			}
			b, ok := buckets[topic]
			if !ok {
				b = &bucket{}
				buckets[topic] = b
			}
			b.total++
			b.prepSum += iv.PreparationLevel
			if iv.Status == models.StatusSelected {
				b.selected++
			}
		}
	}

	stats := make([]TopicStat, 0, len(buckets))
	for topic, b := range buckets {
		stats = append(stats, TopicStat{
			Topic:          topic,
			SuccessRate:    float64(b.selected) / float64(b.total) * 100,
			AvgPreparation: float64(b.prepSum) / float64(b.total),
			Attempts:       b.total,
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].SuccessRate != stats[j].SuccessRate {
			return stats[i].SuccessRate < stats[j].SuccessRate
		}
		return stats[i].Topic < stats[j].Topic
	})
	return stats
}

// weakTopics picks the up-to-three weakest topics under the threshold.
func weakTopics(stats []TopicStat) []TopicStat {
	var weak []TopicStat
	for _, s := range stats {
		if s.SuccessRate < weakTopicThreshold {
			weak = append(weak, s)
			if len(weak) == 3 {
				break
			}
		}
	}
	return weak
}

func weakTopicRecommendations(weak []TopicStat) []string {
	if len(weak) == 0 {
		return nil
	}

	var recs []string
	for _, t := range weak {
		if t.AvgPreparation < lowPreparationLevel {
			recs = append(recs, fmt.Sprintf(
				"%s: Increase preparation (current: %.1f/5). Dedicate 2-3 hours daily for this topic.",
				t.Topic, t.AvgPreparation))
		} else {
			recs = append(recs, fmt.Sprintf(
				"%s: Your preparation is good, but success rate is low. Consider getting mock interviews focused on %s.",
				t.Topic, t.Topic))
		}
	}

	recs = append(recs,
		"Practice problems daily on platforms like LeetCode, HackerRank",
		"Join study groups or find an accountability partner",
		"Review failed interview topics and create a study schedule",
	)
	return recs
}

// personalizedTips applies the rule set and caps the result at five tips.
func personalizedTips(interviews []models.Interview) []Tip {
	var tips []Tip

	avgPrep := averagePreparation(interviews)
	if avgPrep < lowPreparationLevel {
		tips = append(tips, Tip{
			Title: "Increase Your Preparation Time",
			Description: fmt.Sprintf(
				"Your average preparation level is %.2f/5. Studies show that preparation levels above 3.5 significantly increase success rates.",
				avgPrep),
			Action: "Set aside 2-3 hours daily for focused interview preparation. Create a structured study plan.",
		})
	}

	if successRate(interviews) < industryAvgSuccessRate {
		tips = append(tips, Tip{
			Title:       "Master the Fundamentals",
			Description: "Your current success rate suggests focusing on core concepts would be beneficial.",
			Action:      "Spend the next 2 weeks on fundamentals: Data Structures, Algorithms, and System Design basics.",
		})
	}

	if len(interviews) < 5 {
		tips = append(tips, Tip{
			Title:       "Apply to More Companies",
			Description: "Increasing your application volume improves both experience and opportunities.",
			Action:      "Set a goal to apply to 10-15 companies per week. Track each application in this system.",
		})
	}

	tips = append(tips,
		Tip{
			Title:       "Practice Mock Interviews",
			Description: "Mock interviews are proven to reduce anxiety and improve performance by 40%.",
			Action:      "Schedule 2 mock interviews per week with peers or use platforms like Pramp or Interviewing.io.",
		},
		Tip{
			Title:       "Build a Project Portfolio",
			Description: "Having 2-3 solid projects on GitHub significantly boosts your profile.",
			Action:      "Build projects that solve real problems. Document them well with README files.",
		},
		Tip{
			Title:       "Learn from Rejections",
			Description: "Every rejection is a learning opportunity. Analyze what went wrong.",
			Action:      "After each interview, write down what was asked, what you struggled with, and create a study plan.",
		},
	)

	if len(tips) > 5 {
		tips = tips[:5]
	}
	return tips
}

// prediction scores the likely outcome of the next interview from the
// five most recent interviews. Input must be in chronological order.
func prediction(interviews []models.Interview) Prediction {
	recent := interviews
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}

	p := Prediction{
		RecentSuccessRate:    successRate(recent),
		AvgRecentPreparation: averagePreparation(recent),
	}
	p.PredictedSuccessRate = p.AvgRecentPreparation*15 + p.RecentSuccessRate*0.5
	if p.PredictedSuccessRate > 95 {
		p.PredictedSuccessRate = 95
	}
	return p
}

// trendAnalysis compares the success rate of the first half of the
// chronological list against the last half. Needs at least five
// interviews; reports ok=false below that.
func trendAnalysis(interviews []models.Interview) (Trend, bool) {
	if len(interviews) < 5 {
		return Trend{}, false
	}

	half := len(interviews) / 2
	early := interviews[:half]
	late := interviews[len(interviews)-half:]

	t := Trend{
		EarlySuccessRate: successRate(early),
		LateSuccessRate:  successRate(late),
	}
	switch {
	case t.LateSuccessRate > t.EarlySuccessRate:
		t.Direction = "improving"
	case t.LateSuccessRate < t.EarlySuccessRate:
		t.Direction = "declining"
	default:
		t.Direction = "stable"
	}
	return t, true
}
