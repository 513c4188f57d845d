package model

import "counting-down-back/internal/shared"

// UserType — фиксированный набор пользователей приложения
type UserType string

const (
	UserDanfeng UserType = "Danfeng"
	UserJoris   UserType = "Joris"
)

// Валидные значения пользователей
var ValidUserTypes = map[UserType]struct{}{
	UserDanfeng: {},
	UserJoris:   {},
}

func ParseUserType(s string) (UserType, error) {
	ut := UserType(s)
	if _, ok := ValidUserTypes[ut]; !ok {
		return "", shared.InvalidInputf("unknown user type %q", s)
	}
	return ut, nil
}

// OtherUserType возвращает второго пользователя пары
func OtherUserType(u UserType) UserType {
	if u == UserDanfeng {
		return UserJoris
	}
	return UserDanfeng
}

type User struct {
	Username UserType `json:"username"`
}
