package venv

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/klauspost/compress/gzip"
	"go.trai.ch/appenv/internal/core/domain"
	"go.trai.ch/zerr"
)

// repair restores the stdlib packages a distribution stripped from the
// runtime. They are extracted from the CPython source tarball into the
// runtime's site-packages, which a .pth file then moves to the front of the
// module path.
func (p *Provisioner) repair(ctx context.Context, distributionURL, dir string, v interpreterVersion) error {
	site, err := filepath.Abs(sitePackages(dir, v))
	if err != nil {
		return zerr.Wrap(err, "failed to resolve site-packages")
	}
	if err := os.MkdirAll(site, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create site-packages"), "path", site)
	}

	url := fmt.Sprintf("%s/%s/Python-%s.tgz", strings.TrimSuffix(distributionURL, "/"), v.release, v.release)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "invalid distribution url"), "url", url)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to download source distribution"), "url", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		err := zerr.With(zerr.New("failed to download source distribution"), "url", url)
		return zerr.With(err, "status", resp.Status)
	}

	modules := repairModules(v)
	found, err := extractModules(resp.Body, site, modules)
	if err != nil {
		return zerr.With(err, "url", url)
	}
	for _, module := range modules {
		if !found[module] {
			err := zerr.With(zerr.New("module missing from source distribution"), "module", module)
			return zerr.With(err, "url", url)
		}
	}

	pth := fmt.Sprintf("import sys; sys.path.insert(0, '%s')\n", site)
	if err := os.WriteFile(filepath.Join(site, domain.PathFileName), []byte(pth), domain.FilePerm); err != nil {
		return zerr.Wrap(err, "failed to write path file")
	}
	return nil
}

// extractModules copies Lib/<module>/** of a gzipped source tarball into
// site. The tarball's top-level directory is ignored.
func extractModules(r io.Reader, site string, modules []string) (map[string]bool, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to decompress source distribution")
	}
	defer func() { _ = gz.Close() }()

	found := make(map[string]bool, len(modules))
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return found, nil
		}
		if err != nil {
			return nil, zerr.Wrap(err, "failed to read source distribution")
		}

		rel, module, ok := moduleMember(hdr.Name, modules)
		if !ok {
			continue
		}
		target := filepath.Join(site, filepath.FromSlash(rel))

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, domain.DirPerm); err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to create directory"), "path", target)
			}
		case tar.TypeReg:
			if err := writeMember(tr, target); err != nil {
				return nil, err
			}
		default:
			continue
		}
		found[module] = true
	}
}

// moduleMember maps a tarball member to its path relative to site-packages.
func moduleMember(name string, modules []string) (string, string, bool) {
	_, rest, ok := strings.Cut(path.Clean(name), "/")
	if !ok {
		return "", "", false
	}
	rel, ok := strings.CutPrefix(rest, "Lib/")
	if !ok || !filepath.IsLocal(filepath.FromSlash(rel)) {
		return "", "", false
	}
	for _, module := range modules {
		if rel == module || strings.HasPrefix(rel, module+"/") {
			return rel, module, true
		}
	}
	return "", "", false
}

func writeMember(r io.Reader, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", filepath.Dir(target))
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.FilePerm)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create file"), "path", target)
	}
	if _, err := io.Copy(f, r); err != nil { //nolint:gosec // members come from a trusted distribution mirror
		_ = f.Close()
		return zerr.With(zerr.Wrap(err, "failed to extract file"), "path", target)
	}
	return zerr.Wrap(f.Close(), "failed to close file")
}

func sitePackages(dir string, v interpreterVersion) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(dir, "Lib", "site-packages")
	}
	return filepath.Join(dir, "lib", fmt.Sprintf("python%d.%d", v.version.Major(), v.version.Minor()), "site-packages")
}
