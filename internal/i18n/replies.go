package i18n

import (
	"fmt"
	"time"

	"github.com/example/checkinbot/pkg/models"
)

// TimeLayout is the timestamp format shown in check-in replies
const TimeLayout = "01/02 15:04:05"

// kindNames are the display names used inside reply bodies. Reply bodies keep
// the original operator-facing wording; only menus, greetings and the settle
// hint vary by language.
var kindNames = map[models.ActivityKind]string{
	models.Work:   "工作",
	models.Eat:    "吃饭",
	models.Toilet: "上厕所",
	models.Smoke:  "抽烟",
}

// KindName returns the display name for an activity kind
func KindName(kind models.ActivityKind) string {
	return kindNames[kind]
}

func header(name string, userID int64) string {
	return fmt.Sprintf("用户：%s\n用户标识：%d\n", name, userID)
}

// StartWorkReply confirms a work check-in
func StartWorkReply(name string, userID int64, t time.Time) string {
	return header(name, userID) +
		fmt.Sprintf("✅ 打卡成功：上班 - %s\n提示：请记得下班时打卡下班", t.Format(TimeLayout))
}

// StartBreakReply confirms the start of a break. The meal count is called out
// explicitly for Eat, matching the original reply set.
func StartBreakReply(name string, userID int64, res models.StartResult) string {
	body := header(name, userID) +
		fmt.Sprintf("✅ 打卡成功：%s - %s\n", kindNames[res.Kind], res.StartTime.Format(TimeLayout))
	if res.Kind == models.Eat {
		body += fmt.Sprintf("注意：这是您第 %d 次吃饭\n", res.Count)
	}
	return body + "提示：活动完成后请及时打卡回座"
}

// OffWorkReply confirms a work check-out with the settled day totals
func OffWorkReply(name string, userID int64, t time.Time, workTotal, breakTotal time.Duration) string {
	return header(name, userID) +
		fmt.Sprintf("✅ 打卡成功：下班 - %s\n", t.Format(TimeLayout)) +
		"提示：今日工作时长已结算。\n" +
		fmt.Sprintf("总工作时长：%s\n", models.FormatDuration(workTotal)) +
		fmt.Sprintf("总活动时长（吃饭+上厕所+抽烟）：%s", models.FormatDuration(breakTotal))
}

// BackReply confirms settling an activity on back-to-desk, with the elapsed
// time, running totals and the day's break counts
func BackReply(lang, name string, userID int64, t time.Time, res models.StopResult, sum models.Summary) string {
	return header(name, userID) +
		fmt.Sprintf("✅ %s 回座打卡成功：%s\n", t.Format(TimeLayout), kindNames[res.Kind]) +
		BackHint(lang) + "\n" +
		fmt.Sprintf("本次活动耗时：%s\n", models.FormatDuration(res.Elapsed)) +
		fmt.Sprintf("今日累计%s时间：%s\n", kindNames[res.Kind], models.FormatDuration(res.TotalForKind)) +
		fmt.Sprintf("今日累计活动总时间：%s\n", models.FormatDuration(res.GrandTotal)) +
		"------------------------\n" +
		fmt.Sprintf("本日吃饭：%d 次\n", sum.Counts[models.Eat]) +
		fmt.Sprintf("本日上厕所：%d 次\n", sum.Counts[models.Toilet]) +
		fmt.Sprintf("本日抽烟：%d 次", sum.Counts[models.Smoke])
}

// SummaryReply renders the daily summary
func SummaryReply(name string, userID int64, sum models.Summary) string {
	return header(name, userID) +
		fmt.Sprintf("🍽 吃饭 %d 次 (%s)\n", sum.Counts[models.Eat], models.FormatDuration(sum.Durations[models.Eat])) +
		fmt.Sprintf("🚽 上厕所 %d 次 (%s)\n", sum.Counts[models.Toilet], models.FormatDuration(sum.Durations[models.Toilet])) +
		fmt.Sprintf("🚬 抽烟 %d 次 (%s)\n", sum.Counts[models.Smoke], models.FormatDuration(sum.Durations[models.Smoke])) +
		fmt.Sprintf("💼 工作 %d 次 (%s)\n", sum.Counts[models.Work], models.FormatDuration(sum.Durations[models.Work])) +
		fmt.Sprintf("📊 总活动时间：%s", models.FormatDuration(sum.GrandTotal))
}
