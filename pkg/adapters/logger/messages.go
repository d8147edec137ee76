package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("zh", l10n.LexiconMap{
		// Run level
		"Opening %s":                                                     "正在打开 %s",
		"Total frames: %d, Frame rate: %.2f fps":                         "总帧数: %d, 视频帧率: %.2f",
		"Video: %dx%d %s (%s backend)":                                   "视频: %dx%d %s (%s 后端)",
		"Writing every %d frame(s) as %s to %s":                          "每 %d 帧保存一张 %s 图片到 %s",
		"Unsupported image format %q, using %s":                          "不支持的图片格式 %q，改用 %s",
		"Conversion complete: read %d frames, wrote %d in %s (%.2f fps)": "视频转图片完成：读取 %d 帧，写出 %d 张，用时 %s (%.2f 帧/秒)",
		"Stream ended early after frame %d: %v":                          "视频在第 %d 帧后提前结束: %v",
		"Output directory %s already contains %d frame files; matching names will be overwritten": "输出文件夹 %s 中已有 %d 个帧文件，同名文件将被覆盖",
		"Summary saved to %s":                                                                     "摘要已保存到 %s",
		"Failed to write summary: %v":                                                             "摘要写入失败: %v",

		"Failed to open video: %v":                "无法打开视频: %v",
		"Failed to release video source: %v":      "释放视频源失败: %v",
		"Interrupted after %d frames, %d written": "已在 %d 帧后中断，写出 %d 张",
		"Export failed: %v":                       "导出失败: %v",

		// Progress
		"Websocket upgrade failed: %v":  "Websocket 升级失败: %v",
		"Progress client connected: %s": "进度客户端已连接: %s",
		"Encode progress event: %v":     "进度事件编码失败: %v",

		// Sample stage
		"Sampling every %d frame(s), %d-digit names": "每 %d 帧采样一次，文件名 %d 位",
		"Read stopped after frame %d: %v":            "第 %d 帧后读取停止: %v",
		"Read %d frames, wrote %d":                   "读取 %d 帧，写出 %d 张",

		// Sources
		"Probing %s":              "正在探测 %s",
		"Using %s backend for %s": "使用 %s 后端处理 %s",
		"Starting ffmpeg: %s":     "启动 ffmpeg: %s",
	})

	l10n.Register("ja", l10n.LexiconMap{
		"Opening %s":                                                     "%s を開いています",
		"Total frames: %d, Frame rate: %.2f fps":                         "総フレーム数: %d, フレームレート: %.2f fps",
		"Video: %dx%d %s (%s backend)":                                   "動画: %dx%d %s (%s バックエンド)",
		"Writing every %d frame(s) as %s to %s":                          "%d フレームごとに %s 画像を %s に書き出します",
		"Unsupported image format %q, using %s":                          "未対応の画像形式 %q のため %s を使用します",
		"Conversion complete: read %d frames, wrote %d in %s (%.2f fps)": "変換完了: %d フレーム読み込み、%d 枚書き出し、所要 %s (%.2f fps)",
		"Stream ended early after frame %d: %v":                          "%d フレーム目以降の読み込みに失敗しました: %v",
		"Output directory %s already contains %d frame files; matching names will be overwritten": "出力先 %s には既に %d 個のフレームファイルがあります。同名のファイルは上書きされます",
		"Summary saved to %s":                                                                     "サマリーを %s に保存しました",
		"Failed to write summary: %v":                                                             "サマリーの書き込みに失敗しました: %v",

		"Failed to open video: %v":                "動画を開けませんでした: %v",
		"Failed to release video source: %v":      "動画ソースの解放に失敗しました: %v",
		"Interrupted after %d frames, %d written": "%d フレームで中断しました (%d 枚書き出し済み)",
		"Export failed: %v":                       "書き出しに失敗しました: %v",

		"Websocket upgrade failed: %v":  "Websocket のアップグレードに失敗しました: %v",
		"Progress client connected: %s": "進捗クライアントが接続しました: %s",
		"Encode progress event: %v":     "進捗イベントのエンコードに失敗しました: %v",

		"Sampling every %d frame(s), %d-digit names": "%d フレームごとに抽出、ファイル名は %d 桁",
		"Read stopped after frame %d: %v":            "%d フレーム目の後で読み込みが止まりました: %v",
		"Read %d frames, wrote %d":                   "%d フレーム読み込み、%d 枚書き出し",

		"Probing %s":              "%s を解析中",
		"Using %s backend for %s": "%s バックエンドで %s を処理します",
		"Starting ffmpeg: %s":     "ffmpeg を起動: %s",
	})
}
