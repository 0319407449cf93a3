package generator

import (
	"context"
	"io/fs"
	"path"
)

// copyAssets walks the asset filesystem and mirrors every file under the
// output assets directory. Missing asset sources are treated as "nothing to
// copy", not as an error.
func (s *service) copyAssets(ctx context.Context, writer ArtifactWriter) (int, error) {
	if s.deps.Assets == nil {
		return 0, nil
	}

	copied := 0
	err := fs.WalkDir(s.deps.Assets, ".", func(entryPath string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		data, err := fs.ReadFile(s.deps.Assets, entryPath)
		if err != nil {
			return err
		}
		target := path.Join(s.layout.Assets, entryPath)
		if err := writer.WriteFile(ctx, target, data); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, err
	}
	return copied, nil
}
