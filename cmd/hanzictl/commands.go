package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/SlpAus/hanzi-flashcard-backend/internal/seed"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/transfer"
	"github.com/spf13/cobra"
)

func migrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "建表，或为旧版本的表追加缺失的列",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.open(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "数据库 %s 迁移完成\n", a.cfg.Database.Path)
			return nil
		},
	}
}

func seedCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "预置汉字数据",
	}

	common := &cobra.Command{
		Use:   "common",
		Short: "插入100个常用汉字，已存在的不受影响",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.repository()
			if err != nil {
				return err
			}
			n, err := seed.New(repo, a.log).SeedCommon(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "新增 %d 个汉字\n", n)
			return nil
		},
	}

	details := &cobra.Command{
		Use:   "details <file.yaml>",
		Short: "按汉字写入拼音、释义、组词和造句",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := seed.LoadDetailsFile(args[0])
			if err != nil {
				return err
			}
			repo, err := a.repository()
			if err != nil {
				return err
			}
			report, err := seed.New(repo, a.log).ApplyDetails(cmd.Context(), entries)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "更新 %d 个汉字\n", report.Updated)
			if len(report.NotFound) > 0 {
				fmt.Fprintf(out, "未找到 %d 个汉字: %s\n", len(report.NotFound), strings.Join(report.NotFound, " "))
			}
			return nil
		},
	}

	cmd.AddCommand(common, details)
	return cmd
}

func exportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [out.xlsx]",
		Short: "导出全部汉字到 xlsx 文件",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := transfer.FileName(time.Now())
			if len(args) == 1 {
				path = args[0]
			}
			repo, err := a.repository()
			if err != nil {
				return err
			}
			n, err := transfer.NewService(repo, nil, a.log).ExportFile(cmd.Context(), path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已导出 %d 个汉字到 %s\n", n, path)
			return nil
		},
	}
}

func importCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.xlsx|file.csv>",
		Short: "从 xlsx 或 csv 文件导入汉字，已存在的汉字会被覆盖",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.repository()
			if err != nil {
				return err
			}
			res, err := transfer.NewService(repo, nil, a.log).ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, res.Message)
			for _, e := range res.Errors {
				fmt.Fprintln(out, "  "+e)
			}
			return nil
		},
	}
}
