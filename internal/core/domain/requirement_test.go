package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/appenv/internal/core/domain"
)

func TestParseDependencySpec(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		want     domain.DependencySpec
		wantLine string
	}{
		{
			name:     "bare name",
			line:     "requests",
			want:     domain.DependencySpec{Name: "requests"},
			wantLine: "requests",
		},
		{
			name:     "pinned version",
			line:     "requests==2.31.0",
			want:     domain.DependencySpec{Name: "requests", Constraint: "==2.31.0"},
			wantLine: "requests==2.31.0",
		},
		{
			name:     "range with spaces is normalized",
			line:     "Django >= 4.2 , < 5",
			want:     domain.DependencySpec{Name: "Django", Constraint: "<5,>=4.2"},
			wantLine: "Django<5,>=4.2",
		},
		{
			name:     "parenthesized specifier",
			line:     "zope.interface (>=5.0)",
			want:     domain.DependencySpec{Name: "zope.interface", Constraint: ">=5.0"},
			wantLine: "zope.interface>=5.0",
		},
		{
			name:     "extras and marker",
			line:     `uvicorn[standard,http2]==0.29.0; python_version >= "3.8"`,
			want:     domain.DependencySpec{Name: "uvicorn", Extras: []string{"standard", "http2"}, Constraint: "==0.29.0", Marker: `python_version >= "3.8"`},
			wantLine: `uvicorn[standard,http2]==0.29.0; python_version >= "3.8"`,
		},
		{
			name:     "direct reference",
			line:     "pkg @ git+https://example.com/pkg.git@v1.0",
			want:     domain.DependencySpec{Name: "pkg", URL: "git+https://example.com/pkg.git@v1.0"},
			wantLine: "pkg @ git+https://example.com/pkg.git@v1.0",
		},
		{
			name:     "direct reference with marker and fragment",
			line:     `pkg @ https://example.com/pkg-1.0.whl#sha256=abc ; sys_platform == "linux"`,
			want:     domain.DependencySpec{Name: "pkg", URL: "https://example.com/pkg-1.0.whl#sha256=abc", Marker: `sys_platform == "linux"`},
			wantLine: `pkg @ https://example.com/pkg-1.0.whl#sha256=abc ; sys_platform == "linux"`,
		},
		{
			name:     "bare url with egg",
			line:     "git+https://example.com/tool.git@main#egg=tool",
			want:     domain.DependencySpec{Name: "tool", URL: "git+https://example.com/tool.git@main#egg=tool"},
			wantLine: "tool @ git+https://example.com/tool.git@main#egg=tool",
		},
		{
			name:     "editable",
			line:     "-e git+https://example.com/lib.git@abc123#egg=lib",
			want:     domain.DependencySpec{Name: "lib", URL: "git+https://example.com/lib.git@abc123#egg=lib", Editable: true},
			wantLine: "-e git+https://example.com/lib.git@abc123#egg=lib",
		},
		{
			name: "editable with marker",
			line: "-e git+https://example.com/edit.git#egg=Edit ; sys_platform == 'linux'",
			want: domain.DependencySpec{
				Name:     "Edit",
				URL:      "git+https://example.com/edit.git#egg=Edit",
				Marker:   "sys_platform == 'linux'",
				Editable: true,
			},
			wantLine: "-e git+https://example.com/edit.git#egg=Edit ; sys_platform == 'linux'",
		},
		{
			name:     "inline comment",
			line:     "six==1.16.0  # compat",
			want:     domain.DependencySpec{Name: "six", Constraint: "==1.16.0"},
			wantLine: "six==1.16.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseDependencySpec(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantLine, got.String())
		})
	}
}

func TestParseDependencySpec_Invalid(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"empty", "   "},
		{"option line", "--index-url https://example.com/simple"},
		{"nested requirements", "-r other.txt"},
		{"bad name", "-pkg==1.0"},
		{"bad specifier", "pkg=1.0"},
		{"dangling operator", "pkg>="},
		{"unterminated extras", "pkg[extra==1.0"},
		{"url without egg", "https://example.com/pkg.tar.gz"},
		{"empty marker", "pkg==1.0;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.ParseDependencySpec(tt.line)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid requirement")
		})
	}
}

func TestDependencySpec_Key(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Django", "django"},
		{"zope.interface", "zope-interface"},
		{"typing_extensions", "typing-extensions"},
		{"Foo__Bar.-baz", "foo-bar-baz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.DependencySpec{Name: tt.name}.Key())
		})
	}
}

func TestParseRequirements(t *testing.T) {
	data := []byte("# top comment\n\nrequests>=2\r\nclick==8.1.7 # pinned\nrequests==2.31.0\n")

	specs, err := domain.ParseRequirements(data)
	require.NoError(t, err)
	require.Len(t, specs, 3)
	assert.Equal(t, "requests>=2", specs[0].String())
	assert.Equal(t, "click==8.1.7", specs[1].String())
	assert.Equal(t, "requests==2.31.0", specs[2].String())
}

func TestParseRequirements_ReportsLine(t *testing.T) {
	_, err := domain.ParseRequirements([]byte("click\n--pre\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid requirement")
}
