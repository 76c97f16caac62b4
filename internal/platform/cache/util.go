package cache

import (
	"time"
)

// refreshLocation is where the nightly ingest runs; cached views expire at 08:00 local time.
const refreshLocation = "Asia/Ho_Chi_Minh"

// TimeUntilNext8AM は次の午前8時（ベトナム時間）までの期間を返します。
func TimeUntilNext8AM() time.Duration {
	return timeUntilNext8AM(time.Now())
}

func timeUntilNext8AM(now time.Time) time.Duration {
	loc, err := time.LoadLocation(refreshLocation)
	if err != nil {
		// tzdata がない環境では UTC+7 固定
		loc = time.FixedZone("ICT", 7*60*60)
	}
	now = now.In(loc)

	// 次の午前8時を計算
	next8am := time.Date(now.Year(), now.Month(), now.Day(), 8, 0, 0, 0, loc)

	// 今日の午前8時が既に過ぎている場合は明日の午前8時を使用
	if !now.Before(next8am) {
		next8am = next8am.Add(24 * time.Hour)
	}

	return next8am.Sub(now)
}
