package venv

import "net/http"

// SetHTTPClient replaces the client used to download source distributions.
func (p *Provisioner) SetHTTPClient(c *http.Client) {
	p.client = c
}

// ModuleMember exposes moduleMember for testing.
func ModuleMember(name string, modules []string) (string, string, bool) {
	return moduleMember(name, modules)
}
