package render

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"replay_fetcher/internal/fsutil"
)

const readmeTitle = "猛男寨直播录播分组列表"

// RenderIndex rewrites the README with a link to every document under the docs directory.
func (r *Renderer) RenderIndex() error {
	base, err := r.docsLinkBase()
	if err != nil {
		return err
	}

	streamers, err := os.ReadDir(r.docsDir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read docs dir: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n## 分组目录\n\n", readmeTitle)

	documents := 0
	for _, dir := range streamers {
		if !dir.IsDir() || strings.HasPrefix(dir.Name(), ".") {
			continue
		}
		streamer := dir.Name()
		fmt.Fprintf(&b, "- [[**%s**]](%s):\n", streamer, encodeURI(base+"/"+streamer))

		entries, err := os.ReadDir(filepath.Join(r.docsDir, streamer))
		if err != nil {
			return fmt.Errorf("read %s: %w", streamer, err)
		}
		for _, doc := range entries {
			name := doc.Name()
			if doc.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != ".md" {
				continue
			}
			title := strings.TrimSuffix(name, ".md")
			fmt.Fprintf(&b, "\t- [%s](%s)\n", title, encodeURI(base+"/"+streamer+"/"+name))
			documents++
		}
	}

	if len(r.identities) > 0 {
		b.WriteString("\n## 支持的录播Man\n\n")
		for _, id := range r.identities {
			fmt.Fprintf(&b, "- %s: https://space.bilibili.com/%d\n", id.DisplayName, id.ID)
		}
	}

	if err := fsutil.WriteFile(r.readmePath, []byte(b.String())); err != nil {
		return fmt.Errorf("write readme: %w", err)
	}

	r.logger.Info().Int("documents", documents).Str("path", r.readmePath).Msg("updated readme")
	return nil
}

// docsLinkBase is the docs directory relative to the README, in "./a/b" form.
func (r *Renderer) docsLinkBase() (string, error) {
	rel, err := filepath.Rel(filepath.Dir(r.readmePath), r.docsDir)
	if err != nil {
		return "", fmt.Errorf("locate docs dir: %w", err)
	}
	return "./" + filepath.ToSlash(rel), nil
}

func encodeURI(p string) string {
	u := url.URL{Path: p}
	return u.EscapedPath()
}
