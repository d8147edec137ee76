// Package main provides localization for the vidframes CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Output":                "出力先",
		"Sampling":              "サンプリング",
		"Decoding and Encoding": "デコードとエンコード",
		"Logging":               "ログ",

		// Root command
		"Export every Nth frame of a video as numbered images": "動画の N フレームごとに連番画像として書き出す",

		// Subcommands
		"Show the video stream metadata": "動画ストリームのメタデータを表示",
		"Print metadata as JSON":         "メタデータを JSON で出力",
		"Show version information":       "バージョン情報を表示",
		"vidframes version %s":           "vidframes バージョン %s",

		// Flags
		"Output directory (required)":                                  "出力ディレクトリ（必須）",
		"Write a run summary (.json for JSON, otherwise Markdown)":     "実行サマリーを出力（.json なら JSON、それ以外は Markdown）",
		"Keep every Nth frame":                                         "N フレームごとに 1 枚保存",
		"Image format (%s)":                                            "画像形式（%s）",
		"Decoding backend (auto, ffmpeg, mpeg)":                        "デコードバックエンド（auto, ffmpeg, mpeg）",
		"Path to the ffmpeg executable":                                "ffmpeg 実行ファイルのパス",
		"JPEG quality (1-100)":                                         "JPEG 品質（1-100）",
		"Resize frames to this width (0 keeps the original size)":      "フレームをこの幅に縮小（0 は元のサイズ）",
		"Serve websocket progress events at this address (e.g. :8080)": "このアドレスで websocket の進捗イベントを配信（例: :8080）",
		"YAML file with default settings":                              "既定値を記述した YAML ファイル",
		"Log level (debug, info, warn, error)":                         "ログレベル（debug, info, warn, error）",
		"Suppress all log and progress output":                         "全てのログと進捗表示を抑制",

		// Runtime messages
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",
		"Serving progress at ws://%s%s": "進捗を ws://%s%s で配信中",
		"Progress server failed: %v":    "進捗サーバーが停止しました: %v",
		"Error: %v":                     "エラー: %v",

		// Error messages
		"expected exactly one video path": "動画のパスを 1 つだけ指定してください",
		"--output is required":            "--output は必須です",

		// Probe output
		"Container: %s":        "コンテナ: %s",
		"Codec: %s":            "コーデック: %s",
		"Resolution: %dx%d":    "解像度: %dx%d",
		"Rotation: %d":         "回転: %d",
		"Frame rate: %.3f fps": "フレームレート: %.3f fps",
		"Frame rate: %s":       "フレームレート: %s",
		"Total frames: %d":     "総フレーム数: %d",
		"Total frames: %s":     "総フレーム数: %s",
		"unknown":              "不明",

		// Summary content
		"Frame Export Summary": "フレーム書き出しサマリー",
		"Input":                "入力",
		"Settings":             "設定",
		"Result":               "実行結果",
		"Item":                 "項目",
		"Value":                "値",
		"Generated":            "生成日時",
		"Run ID":               "実行 ID",

		// Input section
		"Video":        "動画",
		"Resolution":   "解像度",
		"Codec":        "コーデック",
		"Backend":      "バックエンド",
		"Frame Rate":   "フレームレート",
		"Total Frames": "総フレーム数",

		// Settings section
		"Output Directory": "出力ディレクトリ",
		"Step":             "間隔",
		"Format":           "形式",
		"Quality":          "品質",
		"Resize Width":     "縮小幅",

		// Result section
		"Frames Read":    "読み込みフレーム数",
		"Frames Written": "書き出し枚数",
		"Elapsed":        "所要時間",
		"Throughput":     "処理速度",
		"Stopped By":     "終了理由",
		"Last File":      "最後のファイル",
		"Read Error":     "読み込みエラー",
		"Error":          "エラー",
		"end of stream":  "ストリーム終端",
		"read error":     "読み込みエラー",
		"canceled":       "中断",
		"write error":    "書き込みエラー",
	})

	// Register Chinese translations for CLI messages.
	l10n.Register("zh", l10n.LexiconMap{
		// Flag categories
		"Output":                "输出",
		"Sampling":              "采样",
		"Decoding and Encoding": "解码与编码",
		"Logging":               "日志",

		// Root command
		"Export every Nth frame of a video as numbered images": "将视频每隔 N 帧导出为编号图片",

		// Subcommands
		"Show the video stream metadata": "显示视频流元数据",
		"Print metadata as JSON":         "以 JSON 格式输出元数据",
		"Show version information":       "显示版本信息",
		"vidframes version %s":           "vidframes 版本 %s",

		// Flags
		"Output directory (required)":                                  "输出文件夹（必填）",
		"Write a run summary (.json for JSON, otherwise Markdown)":     "输出运行摘要（.json 为 JSON，否则为 Markdown）",
		"Keep every Nth frame":                                         "每 N 帧保存一张",
		"Image format (%s)":                                            "图片格式（%s）",
		"Decoding backend (auto, ffmpeg, mpeg)":                        "解码后端（auto, ffmpeg, mpeg）",
		"Path to the ffmpeg executable":                                "ffmpeg 可执行文件路径",
		"JPEG quality (1-100)":                                         "JPEG 质量（1-100）",
		"Resize frames to this width (0 keeps the original size)":      "将帧缩放到此宽度（0 保持原尺寸）",
		"Serve websocket progress events at this address (e.g. :8080)": "在此地址提供 websocket 进度事件（例如 :8080）",
		"YAML file with default settings":                              "包含默认设置的 YAML 文件",
		"Log level (debug, info, warn, error)":                         "日志级别（debug, info, warn, error）",
		"Suppress all log and progress output":                         "不输出任何日志和进度",

		// Runtime messages
		"Interrupted, shutting down...": "已中断，正在退出...",
		"Serving progress at ws://%s%s": "进度服务地址 ws://%s%s",
		"Progress server failed: %v":    "进度服务出错: %v",
		"Error: %v":                     "错误: %v",

		// Error messages
		"expected exactly one video path": "请只指定一个视频路径",
		"--output is required":            "必须指定 --output",

		// Probe output
		"Container: %s":        "容器: %s",
		"Codec: %s":            "编码: %s",
		"Resolution: %dx%d":    "分辨率: %dx%d",
		"Rotation: %d":         "旋转: %d",
		"Frame rate: %.3f fps": "帧率: %.3f fps",
		"Frame rate: %s":       "帧率: %s",
		"Total frames: %d":     "总帧数: %d",
		"Total frames: %s":     "总帧数: %s",
		"unknown":              "未知",

		// Summary content
		"Frame Export Summary": "帧导出摘要",
		"Input":                "输入",
		"Settings":             "设置",
		"Result":               "结果",
		"Item":                 "项目",
		"Value":                "值",
		"Generated":            "生成时间",
		"Run ID":               "运行 ID",

		// Input section
		"Video":        "视频",
		"Resolution":   "分辨率",
		"Codec":        "编码",
		"Backend":      "后端",
		"Frame Rate":   "帧率",
		"Total Frames": "总帧数",

		// Settings section
		"Output Directory": "输出文件夹",
		"Step":             "间隔",
		"Format":           "格式",
		"Quality":          "质量",
		"Resize Width":     "缩放宽度",

		// Result section
		"Frames Read":    "读取帧数",
		"Frames Written": "写出张数",
		"Elapsed":        "耗时",
		"Throughput":     "处理速度",
		"Stopped By":     "结束原因",
		"Last File":      "最后的文件",
		"Read Error":     "读取错误",
		"Error":          "错误",
		"end of stream":  "视频结束",
		"read error":     "读取错误",
		"canceled":       "已取消",
		"write error":    "写入错误",
	})
}
