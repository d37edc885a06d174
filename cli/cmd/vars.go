package cmd

import (
	"maps"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/attrex/lang"
)

// VarFlags holds the variable bindings shared by expression commands.
type VarFlags struct {
	Var      map[string]string `help:"Bind a variable (name=value)"           name:"var"       placeholder:"name=value" short:"V"`
	MacroVar map[string]string `help:"Bind a macro variable (name=value)"     name:"macro-var" placeholder:"name=value" short:"M"`
	Macro    bool              `help:"Evaluate as if inside a macro body"     name:"macro"`
	VarsFile string            `help:"YAML file with vars and macro-vars"     name:"vars-file" placeholder:"FILE"       type:"existingfile"`
}

// varsFile is the schema of a --vars-file document.
type varsFile struct {
	Vars      map[string]string `yaml:"vars"`
	MacroVars map[string]string `yaml:"macro-vars"`
}

// Context builds the evaluation context from all flag sources. Flags given
// on the command line override entries loaded from --vars-file.
//
// The macro variable table is populated only when macro bindings exist or
// --macro is set; otherwise macro variable references are rejected during
// evaluation as being outside any macro.
func (f *VarFlags) Context() (*lang.Context, error) {
	ctx := &lang.Context{Vars: make(map[string]string)}

	var file varsFile

	if f.VarsFile != "" {
		data, err := os.ReadFile(f.VarsFile)
		if err != nil {
			return nil, ErrVarsFile.Wrap(err)
		}

		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, ErrVarsFile.Wrap(err)
		}

		maps.Copy(ctx.Vars, file.Vars)
	}

	maps.Copy(ctx.Vars, f.Var)

	if f.Macro || len(f.MacroVar) > 0 || file.MacroVars != nil {
		ctx.MacroVars = make(map[string]string)
		maps.Copy(ctx.MacroVars, file.MacroVars)
		maps.Copy(ctx.MacroVars, f.MacroVar)
	}

	return ctx, nil
}
