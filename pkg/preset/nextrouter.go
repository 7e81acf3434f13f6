// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package preset holds the built-in react-router-dom to next/router plan.
package preset

import (
	"strings"

	"github.com/walteh/routermigrate/pkg/config"
)

// Files are the pages and components still importing react-router-dom.
// Paths are relative to the repository root.
var Files = []string{
	"frontend/components/layout/PersistentLayout.tsx",
	"frontend/components/properties/PropertyDetailPage.tsx",
	"frontend/components/properties/PropertyCard.tsx",
	"frontend/components/ui/page-transition.tsx",
	"frontend/components/home/Footer.tsx",
	"frontend/components/home/FixedHeader.tsx",
	"frontend/pages/dashboard.tsx",
	"frontend/pages/terms-of-use.tsx",
	"frontend/pages/public-site.tsx",
	"frontend/pages/privacy-policy.tsx",
	"frontend/pages/about-us.tsx",
	"frontend/pages/auth.tsx",
	"frontend/pages/notfound.tsx",
}

// RE2 shorthand classes are ASCII-only. space and word widen \s and \w to the
// Unicode whitespace and word characters that source files can contain, such
// as a no-break space or an accented identifier.
const (
	space = `[\s\v\x1c-\x1f\x{85}\p{Z}]`
	word  = `[\p{L}\p{N}_]`
)

var unicodeClasses = strings.NewReplacer(`\s`, space, `\w`, word)

func pattern(p string) string {
	return unicodeClasses.Replace(p)
}

// Rules run top to bottom. Hook declarations are rewritten before their call
// sites so that navigate(...) never sees the useNavigate() declaration.
var Rules = []config.Rule{
	// imports
	{
		Name:        "import",
		Pattern:     pattern(`import\s+\{([^}]*?)\}\s+from\s+['"]react-router-dom['"];?`),
		Replacement: `import { useRouter } from 'next/router';`,
	},

	// hook declarations
	{
		Name:        "use-navigate",
		Pattern:     pattern(`const\s+navigate\s*=\s*useNavigate\(\);?`),
		Replacement: `const router = useRouter();`,
	},
	{
		Name:        "use-location",
		Pattern:     pattern(`const\s+location\s*=\s*useLocation\(\);?`),
		Replacement: `const router = useRouter();`,
	},
	{
		Name:        "use-params",
		Pattern:     pattern(`const\s+params\s*=\s*useParams\(\);?`),
		Replacement: `const router = useRouter();`,
	},
	{
		Name:        "use-params-destructure",
		Pattern:     pattern(`const\s+\{\s*([^}]+)\s*\}\s*=\s*useParams\(\);?`),
		Replacement: `const router = useRouter(); const { ${1} } = router.query;`,
	},

	// usages
	{
		Name:        "navigate-call",
		Pattern:     pattern(`navigate\(([^)]+)\)`),
		Replacement: `router.push(${1})`,
	},
	{
		Name:        "location-pathname",
		Pattern:     pattern(`location\.pathname`),
		Replacement: `router.pathname`,
	},
	{
		Name:        "location-search",
		Pattern:     pattern(`location\.search`),
		Replacement: `router.asPath.split('?')[1] || ''`,
	},
	{
		Name:        "params-access",
		Pattern:     pattern(`params\.(\w+)`),
		Replacement: `router.query.${1}`,
	},
}

// Reminders cover what the rules leave behind on purpose.
var Reminders = []string{
	"<Navigate /> components must be removed",
	"<Outlet /> components must be replaced with {children}",
	"Duplicate 'const router' declarations must be merged",
}

// NextRouter returns a fresh copy of the built-in plan.
func NextRouter() *config.Plan {
	return &config.Plan{
		Files:     append([]string(nil), Files...),
		Rules:     append([]config.Rule(nil), Rules...),
		Reminders: append([]string(nil), Reminders...),
	}
}
