package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/config"
	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/engine"
	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/logger"
	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/model"
	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/report"
)

var (
	flagConf     string
	flagHeadline string
	flagTopic    string
	flagURL      string
	flagProvider string
	flagBudget   int
	flagOut      string
)

func init() {
	flag.StringVar(&flagConf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
	flag.StringVar(&flagHeadline, "headline", "", "headline to analyze")
	flag.StringVar(&flagTopic, "topic", "", "topic of the article (default from config)")
	flag.StringVar(&flagURL, "url", "", "article URL to fetch the headline from")
	flag.StringVar(&flagProvider, "provider", "", "gemini-flash | gemini-thinking | gpt-4o | compatible")
	flag.IntVar(&flagBudget, "budget", -1, "thinking budget for gemini-thinking (-1 uses the config value)")
	flag.StringVar(&flagOut, "out", "", "write an HTML report to this path")
}

func main() {
	flag.Parse()

	// 1. 加载配置
	confPath := flagConf
	if _, err := os.Stat(confPath); err != nil {
		// 没有配置文件时仅使用默认值与环境变量
		confPath = ""
	}
	cfg, err := config.LoadConfig(confPath)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}

	// 2. 初始化日志
	if err = logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	logger.Log.Info("启动标题雷达...")

	// 3. 初始化引擎
	eng, err := engine.NewEngine(cfg)
	if err != nil {
		logger.Log.Fatalf("引擎初始化失败: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	req := &model.AnalysisRequest{
		Headline:  flagHeadline,
		Topic:     flagTopic,
		SourceURL: flagURL,
		Provider:  model.ProviderID(flagProvider),
	}
	if flagBudget >= 0 {
		budget := flagBudget
		req.ThinkingBudget = &budget
	}

	// 4. 分析
	res, err := eng.Analyze(ctx, req)
	if err != nil {
		logger.Log.Errorf("分析失败: %v", err)
		fmt.Fprintln(os.Stderr, engine.UserMessage(err))
		os.Exit(1)
	}

	if res.ReasoningTrace != nil {
		fmt.Printf("# Reasoning\n\n%s\n\n", *res.ReasoningTrace)
	}
	fmt.Println(res.RawText)

	// 5. 生成 HTML
	if flagOut != "" {
		if err := report.WriteFile(flagOut, res); err != nil {
			logger.Log.Fatalf("生成 HTML 失败: %v", err)
		}
		logger.Log.Infof("报告已生成: %s", flagOut)
	}
}
