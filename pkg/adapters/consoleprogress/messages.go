package consoleprogress

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("zh", l10n.LexiconMap{
		"Frame %d/%d (%.1f%%)":                   "第 %d/%d 帧 (%.1f%%)",
		"Frame %d":                               "第 %d 帧",
		"Speed: %.2f frames/s":                   "速度: %.2f 帧/秒",
		"Done: %d frames read, %d written in %s": "完成：读取 %d 帧，写出 %d 张，用时 %s",
	})
	l10n.Register("ja", l10n.LexiconMap{
		"Frame %d/%d (%.1f%%)":                   "フレーム %d/%d (%.1f%%)",
		"Frame %d":                               "フレーム %d",
		"Speed: %.2f frames/s":                   "速度: %.2f フレーム/秒",
		"Done: %d frames read, %d written in %s": "完了: %d フレーム読み込み、%d 枚書き出し (%s)",
	})
}
