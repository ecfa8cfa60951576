package proxy

import "time"

type ScoreAlgo interface {
	CalculateScore(proxy *Proxy, lastUsedAgoSeconds int64) int
}

type NaiveScoreAlgo struct{}

func (p *NaiveScoreAlgo) CalculateScore(proxy *Proxy, lastUsedAgoSeconds int64) int {
	now := time.Now().Unix()
	// Avoid division by zero
	successRate := 0.0
	if proxy.UpTimeTryCount > 0 {
		successRate = float64(proxy.UpTimeSuccessCount) / float64(proxy.UpTimeTryCount)
	}
	latencyScore := 1.0 / (1.0 + proxy.Latency) // lower latency = higher score
	uptimeScore := proxy.UpTime / 100.0
	lastCheckedScore := 0.0
	if now > 0 {
		lastCheckedScore = float64(proxy.LastChecked) / float64(now) // more recent = closer to 1
	}
	responseTimeScore := 1.0 / (1.0 + float64(proxy.ResponseTime))
	speedScore := float64(proxy.Speed) / 10.0
	lastUsedScore := float64(lastUsedAgoSeconds) / (60 * 60) // hours since last used

	score := 0.25*latencyScore +
		0.20*uptimeScore +
		0.20*successRate +
		0.10*lastCheckedScore +
		0.10*responseTimeScore +
		0.10*lastUsedScore +
		0.05*speedScore

	// Scale to int for heap
	return int(score * 1000)
}
