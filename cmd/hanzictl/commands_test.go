package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := rootCommand(&app{})
	cmd.SetOut(out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.ExecuteContext(t.Context()))
	return out.String()
}

func TestCommands(t *testing.T) {
	details, err := filepath.Abs(filepath.Join("..", "..", "data", "details.yaml"))
	require.NoError(t, err)

	dir := t.TempDir()
	t.Chdir(dir)
	db := filepath.Join(dir, "characters.db")

	assert.Contains(t, execute(t, "--db", db, "migrate"), "迁移完成")
	assert.Contains(t, execute(t, "--db", db, "seed", "common"), "新增 100 个汉字")
	assert.Contains(t, execute(t, "--db", db, "seed", "common"), "新增 0 个汉字")

	// 示例详情的10个汉字中只有 学 人 大 小 属于常用字
	got := execute(t, "--db", db, "seed", "details", details)
	assert.Contains(t, got, "更新 4 个汉字")
	assert.Contains(t, got, "未找到 6 个汉字")

	out := filepath.Join(dir, "out.xlsx")
	assert.Contains(t, execute(t, "--db", db, "export", out), "已导出 100 个汉字")
	assert.Contains(t, execute(t, "--db", db, "import", out), "更新 100 个")
}

func TestImportRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cmd := rootCommand(&app{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", filepath.Join(dir, "c.db"), "import", "words.txt"})
	assert.Error(t, cmd.ExecuteContext(t.Context()))
}
