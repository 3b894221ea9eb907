package models

type User struct {
	Usuario      string `json:"usuario"`
	PasswordHash string `json:"contrasena"`
	Role         string `json:"rol"`
}
