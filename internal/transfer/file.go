package transfer

import (
	"context"
	"fmt"
	"os"
)

// ExportFile 把全部汉字导出到本地文件
func (s *Service) ExportFile(ctx context.Context, path string) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("无法创建文件 %s: %w", path, err)
	}
	n, err := s.Export(ctx, f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("无法写入文件 %s: %w", path, cerr)
	}
	return n, err
}

// ImportFile 从本地的 xlsx 或 csv 文件导入
func (s *Service) ImportFile(ctx context.Context, path string) (*Result, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开文件 %s: %w", path, err)
	}
	defer f.Close()
	return s.Import(ctx, f, format)
}
