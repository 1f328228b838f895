// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"sort"

	"github.com/dkaul/quizdeck/internal/model"
)

// TopicAggregate summarizes all quizzes taken on one topic.
type TopicAggregate struct {
	Topic     string
	Quizzes   int
	Questions int
	Correct   int
	Accuracy  float64
}

// AggregateTopics groups history by topic, most-played first.
func AggregateTopics(history []model.Summary) []TopicAggregate {
	byTopic := map[string]*TopicAggregate{}
	order := []string{}
	for _, s := range history {
		topic := s.Topic
		if topic == "" {
			topic = "Untitled"
		}
		agg, ok := byTopic[topic]
		if !ok {
			agg = &TopicAggregate{Topic: topic}
			byTopic[topic] = agg
			order = append(order, topic)
		}
		agg.Quizzes++
		agg.Questions += s.TotalQuestions
		agg.Correct += s.Score
	}
	out := make([]TopicAggregate, 0, len(order))
	for _, topic := range order {
		agg := byTopic[topic]
		if agg.Questions > 0 {
			agg.Accuracy = float64(agg.Correct) / float64(agg.Questions) * 100
		}
		out = append(out, *agg)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Quizzes != out[j].Quizzes {
			return out[i].Quizzes > out[j].Quizzes
		}
		return out[i].Topic < out[j].Topic
	})
	return out
}

// WeakTopics returns the names of up to top topics with the lowest
// accuracy, considering only topics with at least minRuns quizzes.
func WeakTopics(history []model.Summary, top, minRuns int) map[string]struct{} {
	if top <= 0 {
		return nil
	}
	aggs := AggregateTopics(history)
	eligible := make([]TopicAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Quizzes >= minRuns {
			eligible = append(eligible, agg)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].Accuracy != eligible[j].Accuracy {
			return eligible[i].Accuracy < eligible[j].Accuracy
		}
		return eligible[i].Topic < eligible[j].Topic
	})
	if top > len(eligible) {
		top = len(eligible)
	}
	out := make(map[string]struct{}, top)
	for _, agg := range eligible[:top] {
		out[agg.Topic] = struct{}{}
	}
	return out
}

// RenderTopics prints one row per topic with aggregate accuracy.
func RenderTopics(w io.Writer, aggs []TopicAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No quizzes found.")
		return err
	}
	headers := []string{"Topic", "Quizzes", "Questions", "Correct", "Accuracy"}
	rows := make([][]string, 0, len(aggs))
	for _, agg := range aggs {
		rows = append(rows, []string{
			agg.Topic,
			fmt.Sprintf("%d", agg.Quizzes),
			fmt.Sprintf("%d", agg.Questions),
			fmt.Sprintf("%d", agg.Correct),
			fmt.Sprintf("%.1f%%", agg.Accuracy),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
