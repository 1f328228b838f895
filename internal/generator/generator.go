// Package generator builds quiz question sets.
package generator

import (
	"math/rand"
	"time"

	"github.com/dkaul/quizdeck/internal/model"
)

// Picker produces randomized question selections.
type Picker struct {
	rnd *rand.Rand
}

// New returns a Picker seeded with the current time.
func New() *Picker {
	return &Picker{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Pick returns up to count questions from the pool in shuffled order.
// The pool itself is never modified.
func (p *Picker) Pick(pool []model.Question, count int) []model.Question {
	if count <= 0 || len(pool) == 0 {
		return nil
	}
	indexes := p.rnd.Perm(len(pool))
	if count > len(pool) {
		count = len(pool)
	}
	result := make([]model.Question, 0, count)
	for _, idx := range indexes[:count] {
		result = append(result, pool[idx])
	}
	return result
}

// PickMixed draws count questions across topic pools, biasing the draw
// toward weak topics by the given factor. Within a topic questions are
// drawn without repeats until the pool is exhausted.
func (p *Picker) PickMixed(pools map[string][]model.Question, count int, weakTopics map[string]struct{}, factor float64) []model.Question {
	if count <= 0 || len(pools) == 0 {
		return nil
	}

	topics := make([]string, 0, len(pools))
	for topic, pool := range pools {
		if len(pool) > 0 {
			topics = append(topics, topic)
		}
	}
	if len(topics) == 0 {
		return nil
	}

	weights := make([]float64, len(topics))
	total := 0.0
	for i, topic := range topics {
		w := 1.0
		if _, ok := weakTopics[topic]; ok && factor > 0 {
			w += factor
		}
		weights[i] = w
		total += w
	}

	remaining := map[string][]int{}
	for _, topic := range topics {
		remaining[topic] = p.rnd.Perm(len(pools[topic]))
	}

	result := make([]model.Question, 0, count)
	for len(result) < count {
		topic := p.drawTopic(topics, weights, total)
		idxs := remaining[topic]
		if len(idxs) == 0 {
			topics, weights, total = dropTopic(topics, weights, topic)
			if len(topics) == 0 {
				break
			}
			continue
		}
		result = append(result, pools[topic][idxs[0]])
		remaining[topic] = idxs[1:]
	}
	return result
}

func (p *Picker) drawTopic(topics []string, weights []float64, total float64) string {
	r := p.rnd.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r <= acc {
			return topics[i]
		}
	}
	return topics[len(topics)-1]
}

func dropTopic(topics []string, weights []float64, drop string) ([]string, []float64, float64) {
	outTopics := topics[:0]
	outWeights := weights[:0]
	total := 0.0
	for i, topic := range topics {
		if topic == drop {
			continue
		}
		outTopics = append(outTopics, topic)
		outWeights = append(outWeights, weights[i])
		total += weights[i]
	}
	return outTopics, outWeights, total
}
