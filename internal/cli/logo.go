package cli

// asciiLogo is the banner printed by the root help and version output.
const asciiLogo = `┌─┐ ┌─┐ ┬   ┌─┐ ┌┬┐ ┬ ┬
│ │ ├─┤ │ ─ ├─┘ │││ ├─┤
└─┘ ┴ ┴ ┴   ┴   ┴ ┴ ┴ ┴`
