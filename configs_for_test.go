package argbind

import "strings"

// ServerConfig declares optional, writable attributes only.
type ServerConfig struct {
	Host    string   `desc:"Host to bind to." default:"localhost"`
	Port    int      `desc:"Port to bind to." default:"8080" value-name:"PORT"`
	Verbose bool     `desc:"Enable verbose logging."`
	Tags    []string `desc:"Tags to apply." name:"tag"`
}

// AppConfig declares one required initializer parameter ("name") and one
// optional writable attribute ("verbose").
type AppConfig struct {
	Name    string `desc:"Application name." flag:"true"`
	Verbose bool   `desc:"Enable verbose output."`
}

func (c *AppConfig) InitParams() []InitParam {
	return []InitParam{
		{Name: "Name"},
		{Name: "LogLevel", HasDefault: true},
	}
}

func (c *AppConfig) Init(args Args) error {
	if v, ok := args["name"]; ok {
		c.Name = v.(string)
	}
	return nil
}

// TokenConfig declares a read-only attribute that is only bindable through
// its initializer.
type TokenConfig struct {
	Token string `desc:"API token." readonly:"true"`
}

func (c *TokenConfig) InitParams() []InitParam {
	return []InitParam{{Name: "Token"}}
}

func (c *TokenConfig) Init(args Args) error {
	if v, ok := args["token"]; ok {
		c.Token = v.(string)
	}
	return nil
}

// GreeterConfig is bound both through its initializer and through a write
// accessor; its initializer decorates the value so tests can tell which
// binding ran last.
type GreeterConfig struct {
	Greeting string `desc:"Greeting to use."`
}

func (c *GreeterConfig) InitParams() []InitParam {
	return []InitParam{{Name: "Greeting"}}
}

func (c *GreeterConfig) Init(args Args) error {
	if v, ok := args["greeting"]; ok {
		c.Greeting = "init:" + v.(string)
	}
	return nil
}

// RedactedConfig declares an explicit write accessor method.
type RedactedConfig struct {
	Password string `desc:"Password to use."`
}

func (c *RedactedConfig) SetPassword(v string) {
	c.Password = "set:" + strings.ToLower(v)
}

// PaletteConfig declares a closed choice set.
type PaletteConfig struct {
	Color string `desc:"Color to paint with." choices:"RED, GREEN, BLUE" default:"RED"`
}

// BadConfig violates the declaration invariant: its attribute has no write
// accessor and no required initializer parameter.
type BadConfig struct {
	Output string `desc:"Output path." readonly:"true"`
}

// NestedConfig holds attributes in container struct fields.
type NestedConfig struct {
	CommonConfig
	HTTP struct {
		Timeout int `desc:"Timeout in seconds." default:"30"`
	}
}

type CommonConfig struct {
	Debug bool `desc:"Enable debug mode."`
}
